package pipeline

import (
	"context"
	"strings"
)

// CSSInjector adds stylesheets to a rendered deck.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent string, sheets ...string) string
}

// CSSInjection embeds each non-empty sheet as its own <style> element,
// keeping argument order so later sheets override earlier ones.
type CSSInjection struct{}

var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS places the style elements at the end of <head>. Without a head
// they open <body>, and without either they lead the content.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent string, sheets ...string) string {
	if ctx.Err() != nil {
		return htmlContent
	}
	styles := styleElements(sheets)
	if styles == "" {
		return htmlContent
	}

	at := insertionPoint(htmlContent)
	return htmlContent[:at] + styles + htmlContent[at:]
}

func styleElements(sheets []string) string {
	var b strings.Builder
	for _, sheet := range sheets {
		if strings.TrimSpace(sheet) == "" {
			continue
		}
		b.WriteString("<style>")
		b.WriteString(escapeStyleText(sheet))
		b.WriteString("</style>")
	}
	return b.String()
}

// insertionPoint returns the byte offset where style elements belong.
func insertionPoint(doc string) int {
	lower := strings.ToLower(doc)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if end := strings.IndexByte(doc[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// escapeStyleText keeps a sheet from closing its <style> element early.
func escapeStyleText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
