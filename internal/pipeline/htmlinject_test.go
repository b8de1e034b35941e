package pipeline

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestInjectCSS - Placement and Layering
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	const deck = "<html><head><title>D</title></head><body><section class=\"page\"></section></body></html>"

	tests := []struct {
		name   string
		html   string
		sheets []string
		want   string
	}{
		{
			name: "no sheets",
			html: deck,
			want: deck,
		},
		{
			name:   "blank sheets are skipped",
			html:   deck,
			sheets: []string{"", "  \n"},
			want:   deck,
		},
		{
			name:   "one style element per sheet in order",
			html:   deck,
			sheets: []string{".page{}", "", ".chroma{}", ".mine{}"},
			want:   "<html><head><title>D</title><style>.page{}</style><style>.chroma{}</style><style>.mine{}</style></head><body><section class=\"page\"></section></body></html>",
		},
		{
			name:   "upper-case head",
			html:   "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			sheets: []string{"a{}"},
			want:   "<HTML><HEAD><style>a{}</style></HEAD><BODY></BODY></HTML>",
		},
		{
			name:   "opens body when there is no head",
			html:   `<body data-layout="16x9"><section></section></body>`,
			sheets: []string{"a{}"},
			want:   `<body data-layout="16x9"><style>a{}</style><section></section></body>`,
		},
		{
			name:   "leads a bare fragment",
			html:   `<section class="page"></section>`,
			sheets: []string{"a{}"},
			want:   `<style>a{}</style><section class="page"></section>`,
		},
		{
			name:   "sheet cannot close its element",
			html:   "<head></head>",
			sheets: []string{"</style><script>x()</script>"},
			want:   `<head><style><\/style><script>x()<\/script></style></head>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := (&CSSInjection{}).InjectCSS(context.Background(), tt.html, tt.sheets...)
			if got != tt.want {
				t.Errorf("InjectCSS()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := (&CSSInjection{}).InjectCSS(ctx, "<head></head>", ".page{}")
	if strings.Contains(got, "<style>") {
		t.Errorf("InjectCSS() = %q, want no injection after cancel", got)
	}
}

// ---------------------------------------------------------------------------
// TestEscapeStyleText
// ---------------------------------------------------------------------------

func TestEscapeStyleText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                    "",
		".page { margin: 0 }": ".page { margin: 0 }",
		"</STYLE>":            `<\/STYLE>`,
		"a</b>c</d>":          `a<\/b>c<\/d>`,
	}
	for in, want := range tests {
		if got := escapeStyleText(in); got != want {
			t.Errorf("escapeStyleText(%q) = %q, want %q", in, got, want)
		}
	}
}
