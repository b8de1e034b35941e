package md2deck

import (
	"log/slog"

	"github.com/alnah/go-md2deck/internal/logging"
)

// DefaultContinuationSuffix is appended to the title of continuation pages.
const DefaultContinuationSuffix = " (cont.)"

// PlacedBlock is a block or fragment positioned on a page.
type PlacedBlock struct {
	Block Block
	Rect  Rect
}

// Page is one physical output page of a slide.
type Page struct {
	SlideIndex int    // 0-based index of the source slide
	SlideTitle string // title of the source slide
	Title      string // displayed title, with continuation suffix after the first page
	Subtitle   string
	Background string
	Notes      string // first page of a slide only
	First      bool   // first page of its slide
	Placements []PlacedBlock
	Dropped    []Block // content the placer rejected even on an empty page
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithContinuationSuffix sets the suffix for continuation page titles.
func WithContinuationSuffix(s string) PaginatorOption {
	return func(p *Paginator) {
		p.suffix = s
	}
}

// WithDefaultBackground sets the background used by slides without one.
func WithDefaultBackground(path string) PaginatorOption {
	return func(p *Paginator) {
		p.background = path
	}
}

// WithPaginatorLogger sets the logger that receives dropped-content warnings.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		if l != nil {
			p.logger = l
		}
	}
}

// Paginator distributes slide blocks over fixed-size pages.
// It is not safe for concurrent use with a Placer that is not.
type Paginator struct {
	geo        Geometry
	placer     Placer
	suffix     string
	background string
	logger     *slog.Logger
}

// NewPaginator creates a Paginator. A nil placer uses a FitPlacer for geo.
func NewPaginator(geo Geometry, placer Placer, opts ...PaginatorOption) *Paginator {
	if placer == nil {
		placer = NewFitPlacer(geo)
	}
	p := &Paginator{
		geo:    geo,
		placer: placer,
		suffix: DefaultContinuationSuffix,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateDeck paginates every slide in order.
func (p *Paginator) PaginateDeck(slides []Slide) []Page {
	var pages []Page
	for i, s := range slides {
		pages = append(pages, p.Paginate(i, s)...)
	}
	return pages
}

// Paginate lays out one slide. It always returns at least one page and
// always terminates: a block that nothing fits is force-placed on an empty
// page once, and dropped if the placer still rejects it.
func (p *Paginator) Paginate(index int, s Slide) []Page {
	queue := append([]Block(nil), s.Blocks...)
	var pages []Page

	for pageIndex := 0; pageIndex == 0 || len(queue) > 0; pageIndex++ {
		page := p.openPage(index, s, pageIndex)

		var consumed bool
		queue, consumed = p.fill(&page, queue)

		if !consumed && len(queue) > 0 {
			queue = p.force(&page, queue, pageIndex)
		}

		pages = append(pages, page)
	}
	return pages
}

// openPage creates an empty page carrying the slide-level fields.
func (p *Paginator) openPage(index int, s Slide, pageIndex int) Page {
	page := Page{
		SlideIndex: index,
		SlideTitle: s.Title,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Background: s.Background,
		First:      pageIndex == 0,
	}
	if pageIndex > 0 {
		page.Title = s.Title + p.suffix
	}
	if page.Background == "" {
		page.Background = p.background
	}
	if page.First {
		page.Notes = s.Notes
	}
	return page
}

// fill places queued blocks from the body top down until the page is full
// or a block defers. It returns the remaining queue and whether anything
// was placed.
func (p *Paginator) fill(page *Page, queue []Block) ([]Block, bool) {
	g := p.geo
	bottom := g.PageBottom()
	cursor := g.BodyTop
	consumed := false

	for len(queue) > 0 {
		avail := bottom - cursor
		if avail < g.MinBlockHeight {
			break
		}

		area := Rect{X: g.MarginX, Y: cursor, W: g.ContentWidth(), H: avail}
		pl := p.placer.Place(queue[0], area)

		switch pl.Outcome {
		case OutcomeRendered:
			page.add(placedOr(pl, queue[0]), area, pl.Height)
			queue = queue[1:]
			cursor += pl.Height + g.Gap
			consumed = true
		case OutcomeSplit:
			if pl.Placed == nil || pl.Remainder == nil {
				return queue, consumed
			}
			page.add(pl.Placed, area, pl.Height)
			queue[0] = pl.Remainder
			return queue, true
		default:
			return queue, consumed
		}

		if cursor >= bottom-g.Gap {
			break
		}
	}
	return queue, consumed
}

// force places the head block at the body top of a page that received
// nothing, dropping it if the placer still rejects it.
func (p *Paginator) force(page *Page, queue []Block, pageIndex int) []Block {
	area := p.geo.BodyArea()
	head := queue[0]
	pl := p.placer.ForcePlace(head, area)

	switch {
	case pl.Outcome == OutcomeRendered:
		page.add(placedOr(pl, head), area, pl.Height)
		return queue[1:]
	case pl.Outcome == OutcomeSplit && pl.Placed != nil && pl.Remainder != nil:
		page.add(pl.Placed, area, pl.Height)
		queue[0] = pl.Remainder
		return queue
	}

	p.logger.Warn("dropping block that does not fit on an empty page",
		slog.String("slide", page.SlideTitle),
		slog.Int("page", pageIndex+1),
		slog.String("kind", string(head.Kind())),
	)
	page.Dropped = append(page.Dropped, head)
	return queue[1:]
}

// add records a placement at the top of area with the consumed height.
func (pg *Page) add(b Block, area Rect, h float64) {
	pg.Placements = append(pg.Placements, PlacedBlock{
		Block: b,
		Rect:  Rect{X: area.X, Y: area.Y, W: area.W, H: h},
	})
}

// placedOr returns the placed block of pl, or fallback when the placer left it unset.
func placedOr(pl Placement, fallback Block) Block {
	if pl.Placed != nil {
		return pl.Placed
	}
	return fallback
}
