package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
)

// ErrDeckRender indicates the deck template failed to execute.
var ErrDeckRender = errors.New("deck template rendering failed")

// Block kinds understood by the deck template.
const (
	KindParagraph = "paragraph"
	KindBullets   = "bullets"
	KindImage     = "image"
	KindCode      = "code"
	KindTable     = "table"
)

// Box is a rectangle in inches from the top-left corner of a page.
type Box struct {
	X, Y, W, H float64
}

// DeckData is the view model of a paginated deck.
type DeckData struct {
	Title   string
	Author  string
	Company string
	Date    string

	PageWidth   float64
	PageHeight  float64
	TitleBox    Box
	SubtitleBox Box

	Pages []PageData
}

// PageData is one output page.
type PageData struct {
	Slide        int // 1-based source slide number
	Title        string
	Subtitle     string
	Background   string
	Notes        string
	Continuation bool
	Blocks       []BlockData
}

// BlockData is one positioned block. Only the fields of its Kind are set.
type BlockData struct {
	Kind string
	Box  Box

	Text     string // paragraph text or code
	Language string
	Items    []ItemData
	Alt      string
	Src      string
	Sizing   string
	Rows     [][]string
}

// ItemData is one bullet list entry.
type ItemData struct {
	Text     string
	Numbered bool
	Level    int
	Marker   string // set by the renderer
}

// DeckRenderer defines the contract for rendering a deck to HTML.
type DeckRenderer interface {
	RenderDeck(ctx context.Context, data *DeckData) (string, error)
}

// TemplateDeckRenderer renders decks with an html/template.
type TemplateDeckRenderer struct {
	tmpl *template.Template
}

// Compile-time interface check.
var _ DeckRenderer = (*TemplateDeckRenderer)(nil)

// NewTemplateDeckRenderer parses tmplContent with the deck helper functions.
// Block text is rendered through content.
func NewTemplateDeckRenderer(tmplContent string, content ContentRenderer) (*TemplateDeckRenderer, error) {
	if content == nil {
		content = NewGoldmarkRenderer()
	}
	funcs := template.FuncMap{
		"inline": content.Inline,
		"code":   content.Code,
		"box":    boxStyle,
		"inch":   inch,
	}
	tmpl, err := template.New("deck").Funcs(funcs).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}
	return &TemplateDeckRenderer{tmpl: tmpl}, nil
}

// RenderDeck executes the template for data. Bullet markers are assigned
// before execution.
func (r *TemplateDeckRenderer) RenderDeck(ctx context.Context, data *DeckData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: nil deck", ErrDeckRender)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for i := range data.Pages {
		for j := range data.Pages[i].Blocks {
			assignMarkers(data.Pages[i].Blocks[j].Items)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeckRender, err)
	}
	return buf.String(), nil
}

// assignMarkers numbers consecutive numbered items per indent level.
// A shallower item or a plain bullet restarts the count at its level.
func assignMarkers(items []ItemData) {
	var counters [8]int
	for i := range items {
		level := min(max(items[i].Level, 0), len(counters)-1)
		for deeper := level + 1; deeper < len(counters); deeper++ {
			counters[deeper] = 0
		}
		if !items[i].Numbered {
			counters[level] = 0
			items[i].Marker = "•"
			continue
		}
		counters[level]++
		items[i].Marker = strconv.Itoa(counters[level]) + "."
	}
}

// boxStyle positions an element absolutely within its page.
func boxStyle(b Box) template.CSS {
	return template.CSS(fmt.Sprintf("left:%s;top:%s;width:%s;height:%s", inch(b.X), inch(b.Y), inch(b.W), inch(b.H))) // #nosec G203 -- numeric values only
}

// inch formats a length in inches for CSS.
func inch(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', 3, 64) + "in") // #nosec G203 -- numeric value only
}
