package md2deck

import (
	"fmt"
	"strings"
)

// Layout names a presentation aspect ratio.
type Layout string

// Supported layouts.
const (
	Layout16x9  Layout = "16x9"
	Layout16x10 Layout = "16x10"
	Layout4x3   Layout = "4x3"
	LayoutWide  Layout = "wide"
)

// DefaultLayout is used when no layout is specified.
const DefaultLayout = Layout16x9

// layoutSizes maps each layout to its page size in inches.
var layoutSizes = map[Layout][2]float64{
	Layout16x9:  {10, 5.625},
	Layout16x10: {10, 6.25},
	Layout4x3:   {10, 7.5},
	LayoutWide:  {13.333, 7.5},
}

// Layouts returns the supported layout names in a stable order.
func Layouts() []Layout {
	return []Layout{Layout16x9, Layout16x10, Layout4x3, LayoutWide}
}

// ParseLayout resolves a layout name (case-insensitive, optional "LAYOUT_" prefix).
// An empty name yields DefaultLayout.
func ParseLayout(name string) (Layout, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "layout_")
	if n == "" {
		return DefaultLayout, nil
	}
	l := Layout(n)
	if _, ok := layoutSizes[l]; !ok {
		return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidLayout, name, layoutList())
	}
	return l, nil
}

// Validate checks that the layout is known. The zero value is valid (default).
func (l Layout) Validate() error {
	if l == "" {
		return nil
	}
	if _, ok := layoutSizes[l]; !ok {
		return fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidLayout, string(l), layoutList())
	}
	return nil
}

func layoutList() string {
	names := make([]string, 0, len(layoutSizes))
	for _, l := range Layouts() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

// Rect is a box on a page, in inches from the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Geometry is the constants table shared by the paginator and the placer.
// All values are in inches.
type Geometry struct {
	Layout     Layout
	PageWidth  float64
	PageHeight float64

	MarginX        float64
	TitleTop       float64
	TitleHeight    float64
	SubtitleTop    float64
	SubtitleHeight float64
	BodyTop        float64
	BottomMargin   float64
	Gap            float64
	MinBlockHeight float64

	ParagraphLineHeight float64
	BulletLineHeight    float64
	CodeLineHeight      float64
	CodePadding         float64
	ImageMinHeight      float64
	ImageMaxHeight      float64
	TableBaseHeight     float64
	TableRowHeight      float64
}

// NewGeometry returns the standard geometry for a layout.
// An unknown layout falls back to DefaultLayout.
func NewGeometry(l Layout) Geometry {
	size, ok := layoutSizes[l]
	if !ok {
		l = DefaultLayout
		size = layoutSizes[l]
	}
	return Geometry{
		Layout:     l,
		PageWidth:  size[0],
		PageHeight: size[1],

		MarginX:        0.5,
		TitleTop:       0.3,
		TitleHeight:    0.6,
		SubtitleTop:    0.9,
		SubtitleHeight: 0.4,
		BodyTop:        1.4,
		BottomMargin:   0.4,
		Gap:            0.15,
		MinBlockHeight: 0.3,

		ParagraphLineHeight: 0.3,
		BulletLineHeight:    0.32,
		CodeLineHeight:      0.22,
		CodePadding:         0.2,
		ImageMinHeight:      0.8,
		ImageMaxHeight:      3.0,
		TableBaseHeight:     0.2,
		TableRowHeight:      0.35,
	}
}

// ContentWidth is the usable width between the horizontal margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.MarginX
}

// PageBottom is the lowest y a block may reach.
func (g Geometry) PageBottom() float64 {
	return g.PageHeight - g.BottomMargin
}

// BodyArea is the full body rectangle of an empty page.
func (g Geometry) BodyArea() Rect {
	return Rect{X: g.MarginX, Y: g.BodyTop, W: g.ContentWidth(), H: g.PageBottom() - g.BodyTop}
}
