package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// minFence is the shortest fence a code block is wrapped in.
const minFence = 3

// ContentRenderer turns block text into HTML fragments.
type ContentRenderer interface {
	Inline(text string) (template.HTML, error)
	Code(code, language string) (template.HTML, error)
}

// GoldmarkRenderer renders inline Markdown and highlighted code using goldmark.
type GoldmarkRenderer struct {
	inline goldmark.Markdown
	code   goldmark.Markdown
}

// Compile-time interface check.
var _ ContentRenderer = (*GoldmarkRenderer)(nil)

// inlineParser recognizes paragraphs as the only block. Slide text has
// already been split into blocks, so "---", "+ ", "> " or "1) " lines stay
// text instead of becoming headings, lists or quotes.
func inlineParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with class-based highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	inline := goldmark.New(
		goldmark.WithParser(inlineParser()),
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	code := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(DefaultHighlightStyle),
				highlighting.WithFormatOptions(
					html.WithClasses(true),
				),
			),
		),
	)
	return &GoldmarkRenderer{inline: inline, code: code}
}

// Inline renders text as inline Markdown (emphasis, links, code spans).
// A single wrapping paragraph is removed so the result nests in any element.
func (r *GoldmarkRenderer) Inline(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.inline.Convert([]byte(strings.TrimSuffix(text, "\n")), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return template.HTML(unwrapParagraph(buf.String())), nil // #nosec G203 -- goldmark output without WithUnsafe
}

// Code renders a code block with syntax highlighting for language.
// An empty or unknown language yields a plain <pre><code> block.
func (r *GoldmarkRenderer) Code(code, language string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.code.Convert([]byte(fenceCode(code, language)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark output without WithUnsafe
}

// fenceCode wraps code in a backtick fence longer than any run it contains.
func fenceCode(code, language string) string {
	fence := strings.Repeat("`", max(minFence, longestRun(code, '`')+1))

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(language)
	b.WriteByte('\n')
	b.WriteString(code)
	if code != "" && !strings.HasSuffix(code, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	b.WriteByte('\n')
	return b.String()
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

// unwrapParagraph strips the <p> goldmark puts around a single paragraph.
func unwrapParagraph(s string) string {
	trimmed := strings.TrimSuffix(s, "\n")
	if !strings.HasPrefix(trimmed, "<p>") || !strings.HasSuffix(trimmed, "</p>") {
		return s
	}
	inner := trimmed[len("<p>") : len(trimmed)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}

// HighlightCSS returns the stylesheet for highlighted code blocks.
// Unknown style names fall back to chroma's default style.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	var buf bytes.Buffer
	if err := html.New(html.WithClasses(true)).WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
