package pipeline

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/alnah/go-md2deck/internal/assets"
)

// fakeContent renders text verbatim inside markers so tests can see calls.
type fakeContent struct{}

func (fakeContent) Inline(text string) (template.HTML, error) {
	return template.HTML("[" + template.HTMLEscapeString(text) + "]"), nil
}

func (fakeContent) Code(code, language string) (template.HTML, error) {
	return template.HTML("<pre data-lang=\"" + language + "\">" + template.HTMLEscapeString(code) + "</pre>"), nil
}

// failingContent fails every inline render.
type failingContent struct{ fakeContent }

func (failingContent) Inline(string) (template.HTML, error) {
	return "", errors.New("boom")
}

func sampleDeck() *DeckData {
	return &DeckData{
		Title:       "Quarterly",
		Author:      "Ops",
		PageWidth:   10,
		PageHeight:  5.625,
		TitleBox:    Box{X: 0.5, Y: 0.3, W: 9, H: 0.6},
		SubtitleBox: Box{X: 0.5, Y: 0.9, W: 9, H: 0.4},
		Pages: []PageData{
			{
				Slide:      1,
				Title:      "Intro",
				Subtitle:   "Why",
				Background: "bg.png",
				Notes:      "say hello",
				Blocks: []BlockData{
					{Kind: KindParagraph, Box: Box{X: 0.5, Y: 1.4, W: 9, H: 0.3}, Text: "Hello"},
					{Kind: KindBullets, Box: Box{X: 0.5, Y: 1.85, W: 9, H: 0.64}, Items: []ItemData{
						{Text: "one", Numbered: true},
						{Text: "two", Numbered: true},
					}},
				},
			},
			{
				Slide:        1,
				Title:        "Intro (cont.)",
				Continuation: true,
				Blocks: []BlockData{
					{Kind: KindImage, Src: "chart.png", Alt: "Chart", Sizing: "cover"},
					{Kind: KindCode, Text: "x := 1", Language: "go"},
					{Kind: KindTable, Rows: [][]string{{"H1", "H2"}, {"a", "b"}}},
				},
			},
		},
	}
}

func TestTemplateDeckRenderer_RenderDeck(t *testing.T) {
	t.Parallel()

	tmpl, err := assets.NewEmbeddedLoader().LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	r, err := NewTemplateDeckRenderer(tmpl, fakeContent{})
	if err != nil {
		t.Fatalf("NewTemplateDeckRenderer() error = %v", err)
	}

	got, err := r.RenderDeck(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("RenderDeck() unexpected error: %v", err)
	}

	wantContains := []string{
		"<title>Quarterly</title>",
		`<meta name="author" content="Ops">`,
		"size: 10.000in 5.625in",
		`<section class="page" data-slide="1"`,
		`<section class="page continuation" data-slide="1"`,
		`<img class="background" src="bg.png"`,
		"left:0.500in;top:0.300in;width:9.000in;height:0.600in",
		">Intro</h1>",
		">Intro (cont.)</h1>",
		`class="slide-subtitle"`,
		"<p>[Hello]</p>",
		`<span class="marker">1.</span> [one]`,
		`<span class="marker">2.</span> [two]`,
		`class="fit-cover" src="chart.png" alt="Chart"`,
		`<pre data-lang="go">x := 1</pre>`,
		"<th>[H1]</th>",
		"<td>[a]</td>",
		`<aside class="notes">say hello</aside>`,
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDeck() missing %q", want)
		}
	}

	if strings.Count(got, `<section class="page`) != 2 {
		t.Errorf("RenderDeck() should emit one section per page")
	}
	if strings.Count(got, `class="notes"`) != 1 {
		t.Errorf("RenderDeck() should emit notes on the first page only")
	}
	if strings.Count(got, `class="slide-subtitle"`) != 1 {
		t.Errorf("RenderDeck() should omit empty subtitles")
	}
}

func TestTemplateDeckRenderer_EscapesText(t *testing.T) {
	t.Parallel()

	r, err := NewTemplateDeckRenderer(`{{range .Pages}}<h1>{{.Title}}</h1><aside>{{.Notes}}</aside>{{end}}`, fakeContent{})
	if err != nil {
		t.Fatalf("NewTemplateDeckRenderer() error = %v", err)
	}

	got, err := r.RenderDeck(context.Background(), &DeckData{Pages: []PageData{
		{Title: "<b>x</b>", Notes: "a & b"},
	}})
	if err != nil {
		t.Fatalf("RenderDeck() unexpected error: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("RenderDeck() = %q, titles must be escaped", got)
	}
	if !strings.Contains(got, "a &amp; b") {
		t.Errorf("RenderDeck() = %q, notes must be escaped", got)
	}
}

func TestTemplateDeckRenderer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid template", func(t *testing.T) {
		t.Parallel()

		if _, err := NewTemplateDeckRenderer("{{range}", nil); err == nil {
			t.Error("NewTemplateDeckRenderer() expected parse error")
		}
	})

	t.Run("nil deck", func(t *testing.T) {
		t.Parallel()

		r, _ := NewTemplateDeckRenderer("ok", fakeContent{})
		if _, err := r.RenderDeck(context.Background(), nil); !errors.Is(err, ErrDeckRender) {
			t.Errorf("RenderDeck(nil) error = %v, want ErrDeckRender", err)
		}
	})

	t.Run("content error", func(t *testing.T) {
		t.Parallel()

		r, _ := NewTemplateDeckRenderer(`{{range .Pages}}{{range .Blocks}}{{inline .Text}}{{end}}{{end}}`, failingContent{})
		data := &DeckData{Pages: []PageData{{Blocks: []BlockData{{Kind: KindParagraph, Text: "x"}}}}}
		if _, err := r.RenderDeck(context.Background(), data); !errors.Is(err, ErrDeckRender) {
			t.Errorf("RenderDeck() error = %v, want ErrDeckRender", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r, _ := NewTemplateDeckRenderer("ok", fakeContent{})
		if _, err := r.RenderDeck(ctx, &DeckData{}); !errors.Is(err, context.Canceled) {
			t.Errorf("RenderDeck() error = %v, want context.Canceled", err)
		}
	})
}

func TestAssignMarkers(t *testing.T) {
	t.Parallel()

	items := []ItemData{
		{Numbered: true, Level: 0},
		{Numbered: true, Level: 1},
		{Numbered: true, Level: 1},
		{Numbered: true, Level: 0},
		{Numbered: false, Level: 0},
		{Numbered: true, Level: 0},
		{Numbered: true, Level: 2},
	}
	assignMarkers(items)

	want := []string{"1.", "1.", "2.", "2.", "•", "1.", "1."}
	for i, w := range want {
		if items[i].Marker != w {
			t.Errorf("item %d marker = %q, want %q", i, items[i].Marker, w)
		}
	}
}

func TestBoxStyle(t *testing.T) {
	t.Parallel()

	got := boxStyle(Box{X: 1, Y: 1.25, W: 8.5, H: 0.3333})
	want := template.CSS("left:1.000in;top:1.250in;width:8.500in;height:0.333in")
	if got != want {
		t.Errorf("boxStyle() = %q, want %q", got, want)
	}
}
