package md2deck

import (
	"fmt"
	"math"

	"github.com/alnah/go-md2deck/internal/yamlutil"
)

// Deck is the serializable result of a conversion.
type Deck struct {
	Metadata Metadata
	Layout   Layout
	Slides   []Slide
	Pages    []Page
}

// deckDoc is the YAML shape of a Deck.
type deckDoc struct {
	Title   string     `yaml:"title,omitempty"`
	Author  string     `yaml:"author,omitempty"`
	Company string     `yaml:"company,omitempty"`
	Date    string     `yaml:"date,omitempty"`
	Layout  string     `yaml:"layout,omitempty"`
	Slides  []slideDoc `yaml:"slides"`
	Pages   []pageDoc  `yaml:"pages,omitempty"`
}

type slideDoc struct {
	Title      string     `yaml:"title"`
	Subtitle   string     `yaml:"subtitle,omitempty"`
	Notes      string     `yaml:"notes,omitempty"`
	Background string     `yaml:"background,omitempty"`
	Blocks     []blockDoc `yaml:"blocks,omitempty"`
}

// blockDoc is a kind-tagged block. Only the fields of Kind are set.
type blockDoc struct {
	Kind     string     `yaml:"kind"`
	Text     string     `yaml:"text,omitempty"`
	Language string     `yaml:"language,omitempty"`
	Items    []itemDoc  `yaml:"items,omitempty"`
	Alt      string     `yaml:"alt,omitempty"`
	Path     string     `yaml:"path,omitempty"`
	Sizing   string     `yaml:"sizing,omitempty"`
	Rows     [][]string `yaml:"rows,omitempty"`
}

type itemDoc struct {
	Text   string `yaml:"text"`
	Kind   string `yaml:"kind,omitempty"`
	Indent int    `yaml:"indent,omitempty"`
}

type pageDoc struct {
	Slide        int            `yaml:"slide"`
	Title        string         `yaml:"title"`
	Subtitle     string         `yaml:"subtitle,omitempty"`
	Background   string         `yaml:"background,omitempty"`
	Notes        string         `yaml:"notes,omitempty"`
	Continuation bool           `yaml:"continuation,omitempty"`
	Placements   []placementDoc `yaml:"placements,omitempty"`
	Dropped      []blockDoc     `yaml:"dropped,omitempty"`
}

type placementDoc struct {
	X     float64  `yaml:"x"`
	Y     float64  `yaml:"y"`
	W     float64  `yaml:"w"`
	H     float64  `yaml:"h"`
	Block blockDoc `yaml:"block"`
}

// MarshalDeck encodes d as YAML. Page numbers are 1-based and
// coordinates are rounded to thousandths of an inch.
func MarshalDeck(d Deck) ([]byte, error) {
	doc := deckDoc{
		Title:   d.Metadata.Title,
		Author:  d.Metadata.Author,
		Company: d.Metadata.Company,
		Date:    d.Metadata.Date,
		Layout:  string(d.Layout),
		Slides:  make([]slideDoc, 0, len(d.Slides)),
	}
	for _, s := range d.Slides {
		doc.Slides = append(doc.Slides, toSlideDoc(s))
	}
	for _, p := range d.Pages {
		doc.Pages = append(doc.Pages, toPageDoc(p))
	}
	return yamlutil.Marshal(doc)
}

// UnmarshalSlides decodes the slides section of a deck document.
// Other sections are ignored.
func UnmarshalSlides(data []byte) ([]Slide, error) {
	var doc deckDoc
	if err := yamlutil.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	slides := make([]Slide, 0, len(doc.Slides))
	for i, sd := range doc.Slides {
		s := Slide{
			Title:      sd.Title,
			Subtitle:   sd.Subtitle,
			Notes:      sd.Notes,
			Background: sd.Background,
		}
		for j, bd := range sd.Blocks {
			b, err := bd.block()
			if err != nil {
				return nil, fmt.Errorf("slide %d block %d: %w", i+1, j+1, err)
			}
			s.Blocks = append(s.Blocks, b)
		}
		slides = append(slides, s)
	}
	return slides, nil
}

func toSlideDoc(s Slide) slideDoc {
	sd := slideDoc{
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Notes:      s.Notes,
		Background: s.Background,
	}
	for _, b := range s.Blocks {
		sd.Blocks = append(sd.Blocks, toBlockDoc(b))
	}
	return sd
}

func toPageDoc(p Page) pageDoc {
	pd := pageDoc{
		Slide:        p.SlideIndex + 1,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Background:   p.Background,
		Notes:        p.Notes,
		Continuation: !p.First,
	}
	for _, pl := range p.Placements {
		pd.Placements = append(pd.Placements, placementDoc{
			X:     round3(pl.Rect.X),
			Y:     round3(pl.Rect.Y),
			W:     round3(pl.Rect.W),
			H:     round3(pl.Rect.H),
			Block: toBlockDoc(pl.Block),
		})
	}
	for _, b := range p.Dropped {
		pd.Dropped = append(pd.Dropped, toBlockDoc(b))
	}
	return pd
}

func toBlockDoc(b Block) blockDoc {
	bd := blockDoc{Kind: string(b.Kind())}
	switch v := b.(type) {
	case Paragraph:
		bd.Text = v.Text
	case Bullets:
		for _, it := range v.Items {
			bd.Items = append(bd.Items, itemDoc{Text: it.Text, Kind: string(it.Kind), Indent: it.IndentLevel})
		}
	case Image:
		bd.Alt = v.AltText
		bd.Path = v.Path
		bd.Sizing = string(v.Sizing)
	case Code:
		bd.Text = v.Text
		bd.Language = v.Language
	case Table:
		bd.Rows = v.Rows
	}
	return bd
}

// block converts bd back to a Block, rejecting unknown kinds and values.
func (bd blockDoc) block() (Block, error) {
	switch BlockKind(bd.Kind) {
	case KindParagraph:
		return Paragraph{Text: bd.Text}, nil
	case KindCode:
		return Code{Text: bd.Text, Language: bd.Language}, nil
	case KindTable:
		return Table{Rows: bd.Rows}, nil
	case KindImage:
		sizing := SizingMode(bd.Sizing)
		switch sizing {
		case SizingDefault, SizingCover, SizingContain:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidSizing, bd.Sizing)
		}
		return Image{AltText: bd.Alt, Path: bd.Path, Sizing: sizing}, nil
	case KindBullets:
		if len(bd.Items) == 0 {
			return nil, fmt.Errorf("%w: bullets without items", ErrInvalidBlock)
		}
		items := make([]BulletItem, 0, len(bd.Items))
		for _, it := range bd.Items {
			kind := BulletKind(it.Kind)
			switch kind {
			case "":
				kind = BulletPlain
			case BulletPlain, BulletNumbered:
			default:
				return nil, fmt.Errorf("%w: bullet kind %q", ErrInvalidBlock, it.Kind)
			}
			items = append(items, BulletItem{
				Text:        it.Text,
				Kind:        kind,
				IndentLevel: min(max(it.Indent, 0), MaxIndentLevel),
			})
		}
		return Bullets{Items: items}, nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalidBlock, bd.Kind)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
