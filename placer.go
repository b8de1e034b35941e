package md2deck

import (
	"math"
	"strings"
)

// Outcome is the placement decision for one block.
type Outcome int

// Placement outcomes.
const (
	// OutcomeDefer leaves the block for the next page.
	OutcomeDefer Outcome = iota
	// OutcomeRendered means the whole block was placed.
	OutcomeRendered
	// OutcomeSplit means a head fragment was placed and a remainder is left.
	OutcomeSplit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeSplit:
		return "split"
	default:
		return "defer"
	}
}

// Placement is the result of asking a Placer to place a block.
type Placement struct {
	Outcome   Outcome
	Height    float64 // vertical extent consumed
	Placed    Block   // block or head fragment drawn on this page
	Remainder Block   // unplaced fragment, set for OutcomeSplit
}

// Rendered reports that b was placed whole using height h.
func Rendered(b Block, h float64) Placement {
	return Placement{Outcome: OutcomeRendered, Height: h, Placed: b}
}

// Split reports that head was placed using height h and rest remains.
func Split(head, rest Block, h float64) Placement {
	return Placement{Outcome: OutcomeSplit, Height: h, Placed: head, Remainder: rest}
}

// Deferred reports that nothing was placed.
func Deferred() Placement {
	return Placement{Outcome: OutcomeDefer}
}

// Placer decides how much of a block fits in an area.
// Place may defer; ForcePlace is used on an otherwise-empty page and should
// place something whenever it can.
type Placer interface {
	Place(b Block, area Rect) Placement
	ForcePlace(b Block, area Rect) Placement
}

// fitEpsilon absorbs floating point noise when counting whole lines.
const fitEpsilon = 1e-9

// FitPlacer decides fit from the fixed per-kind heights of a Geometry.
type FitPlacer struct {
	geo Geometry
}

// NewFitPlacer creates a FitPlacer for geo.
func NewFitPlacer(geo Geometry) *FitPlacer {
	return &FitPlacer{geo: geo}
}

// Compile-time interface check.
var _ Placer = (*FitPlacer)(nil)

// Height returns the height b needs when nothing constrains it.
func (p *FitPlacer) Height(b Block) float64 {
	g := p.geo
	switch v := b.(type) {
	case Paragraph:
		return float64(len(textLines(v.Text))) * g.ParagraphLineHeight
	case Bullets:
		return float64(len(v.Items)) * g.BulletLineHeight
	case Code:
		return float64(len(textLines(v.Text)))*g.CodeLineHeight + g.CodePadding
	case Image:
		return g.ImageMaxHeight
	case Table:
		return g.TableBaseHeight + float64(len(v.Rows))*g.TableRowHeight
	default:
		return 0
	}
}

// Place fits b into area, splitting paragraphs, bullets and code on whole lines.
func (p *FitPlacer) Place(b Block, area Rect) Placement {
	g := p.geo
	switch v := b.(type) {
	case Paragraph:
		return p.placeLines(v, textLines(v.Text), g.ParagraphLineHeight, 0, area.H)
	case Code:
		return p.placeLines(v, textLines(v.Text), g.CodeLineHeight, g.CodePadding, area.H)
	case Bullets:
		n := fitCount(area.H, g.BulletLineHeight)
		if n >= len(v.Items) {
			return Rendered(v, p.Height(v))
		}
		if n == 0 {
			return Deferred()
		}
		return splitBullets(v, n, float64(n)*g.BulletLineHeight)
	case Image:
		if area.H < g.ImageMinHeight {
			return Deferred()
		}
		return Rendered(v, math.Min(g.ImageMaxHeight, area.H))
	case Table:
		if h := p.Height(v); h <= area.H+fitEpsilon {
			return Rendered(v, h)
		}
		return Deferred()
	default:
		return Deferred()
	}
}

// ForcePlace places at least one line or item of a splittable block, and
// clips images and tables to area.
func (p *FitPlacer) ForcePlace(b Block, area Rect) Placement {
	if pl := p.Place(b, area); pl.Outcome != OutcomeDefer {
		return pl
	}
	g := p.geo
	switch v := b.(type) {
	case Paragraph:
		return forceLines(v, textLines(v.Text), area.H)
	case Code:
		return forceLines(v, textLines(v.Text), area.H)
	case Bullets:
		if len(v.Items) <= 1 {
			return Rendered(v, area.H)
		}
		return splitBullets(v, 1, math.Min(g.BulletLineHeight, area.H))
	case Image, Table:
		return Rendered(v, math.Min(p.Height(v), area.H))
	default:
		return Deferred()
	}
}

// placeLines fits a line-based block, keeping padding once per fragment.
func (p *FitPlacer) placeLines(b Block, lines []string, lineHeight, padding, avail float64) Placement {
	n := fitCount(avail-padding, lineHeight)
	if n >= len(lines) {
		return Rendered(b, float64(len(lines))*lineHeight+padding)
	}
	if n == 0 {
		return Deferred()
	}
	head, rest := splitText(b, n)
	return Split(head, rest, float64(n)*lineHeight+padding)
}

// forceLines places the first line of b in an area too small for it.
func forceLines(b Block, lines []string, avail float64) Placement {
	if len(lines) <= 1 {
		return Rendered(b, avail)
	}
	head, rest := splitText(b, 1)
	return Split(head, rest, avail)
}

// fitCount returns how many whole lines of height lh fit in avail.
func fitCount(avail, lh float64) int {
	if avail <= 0 || lh <= 0 {
		return 0
	}
	return int(math.Floor(avail/lh + fitEpsilon))
}

// splitText splits a paragraph or code block after its first n lines.
// The head keeps the separating newline, so head.Text+rest.Text equals the
// source text.
func splitText(b Block, n int) (Block, Block) {
	var text string
	switch v := b.(type) {
	case Paragraph:
		text = v.Text
	case Code:
		text = v.Text
	}
	lines := textLines(text)
	headText := strings.Join(lines[:n], "\n") + "\n"
	restText := strings.Join(lines[n:], "\n")
	if strings.HasSuffix(text, "\n") {
		restText += "\n"
	}

	switch v := b.(type) {
	case Code:
		return Code{Text: headText, Language: v.Language}, Code{Text: restText, Language: v.Language}
	default:
		return Paragraph{Text: headText}, Paragraph{Text: restText}
	}
}

// splitBullets splits a bullets block after its first n items.
func splitBullets(b Bullets, n int, h float64) Placement {
	head := Bullets{Items: append([]BulletItem(nil), b.Items[:n]...)}
	rest := Bullets{Items: append([]BulletItem(nil), b.Items[n:]...)}
	return Split(head, rest, h)
}
