package pipeline

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// byteOrderMark is stripped from the start of the source.
const byteOrderMark = "\uFEFF"

// TextPreprocessor defines the contract for source normalization.
type TextPreprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// SourceNormalizer prepares deck source text for parsing.
type SourceNormalizer struct{}

// Compile-time interface check.
var _ TextPreprocessor = (*SourceNormalizer)(nil)

// Preprocess strips a leading BOM and composes the text to NFC so that
// visually equal titles compare equal. Line endings are left to the parser.
func (n *SourceNormalizer) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return norm.NFC.String(content)
}
