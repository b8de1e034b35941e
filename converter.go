package md2deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2deck/internal/assets"
	"github.com/alnah/go-md2deck/internal/dateutil"
	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/logging"
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TextPreprocessor = (*pipeline.SourceNormalizer)(nil)
	_ pipeline.ContentRenderer  = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.DeckRenderer     = (*pipeline.TemplateDeckRenderer)(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader        = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the markdown-to-deck pipeline.
// Create with NewConverter, call Convert per document, and Close when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	preprocessor pipeline.TextPreprocessor
	deckRenderer pipeline.DeckRenderer
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter

	style        string
	highlightCSS string
	now          func() time.Time
}

// NewConverter creates a Converter. Options select the style, asset
// directory, timeout, logger and placer. It fails if the style or the deck
// template cannot be loaded. No browser is started until a PDF is requested.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		preprocessor: &pipeline.SourceNormalizer{},
		cssInjector:  &pipeline.CSSInjection{},
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.logger == nil {
		c.cfg.logger = logging.Discard()
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading deck template: %w", err)
	}

	// Injected renderers (tests) skip template parsing
	if c.deckRenderer == nil {
		c.deckRenderer, err = pipeline.NewTemplateDeckRenderer(tmpl, pipeline.NewGoldmarkRenderer())
		if err != nil {
			return nil, fmt.Errorf("initializing deck renderer: %w", err)
		}
	}

	c.highlightCSS, err = pipeline.HighlightCSS(pipeline.DefaultHighlightStyle)
	if err != nil {
		return nil, fmt.Errorf("generating highlight CSS: %w", err)
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert parses, paginates and renders one document in the requested format.
// The context is checked between stages and bounds PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	text := c.preprocessor.Preprocess(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slides := Parse(text)
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	layout := input.Layout
	if layout == "" {
		layout = DefaultLayout
	}
	geo := NewGeometry(layout)

	pages := c.paginator(geo, input).PaginateDeck(slides)

	meta, err := c.resolveMetadata(input.Metadata, slides)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{Slides: slides, Pages: pages}
	for _, p := range pages {
		res.Dropped += len(p.Dropped)
	}
	if res.Dropped > 0 {
		c.cfg.logger.Warn("content dropped during pagination", "blocks", res.Dropped)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if input.Format == FormatYAML {
		res.YAML, err = MarshalDeck(Deck{Metadata: meta, Layout: layout, Slides: slides, Pages: pages})
		if err != nil {
			return nil, fmt.Errorf("encoding deck: %w", err)
		}
		return res, nil
	}

	htmlContent, err := c.renderHTML(ctx, geo, meta, pages, input)
	if err != nil {
		return nil, err
	}
	res.HTML = []byte(htmlContent)

	if input.Format != FormatPDF {
		return res, nil
	}

	res.PDF, err = c.pdfConverter.ToPDF(ctx, htmlContent, pdfOptionsFor(geo))
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// paginator builds the paginator of one conversion. Placer and paginator
// share geo.
func (c *Converter) paginator(geo Geometry, input Input) *Paginator {
	var placer Placer
	if c.cfg.placer != nil {
		placer = c.cfg.placer(geo)
	}

	opts := []PaginatorOption{
		WithDefaultBackground(input.Background),
		WithPaginatorLogger(c.cfg.logger),
	}
	if input.ContinuationSuffix != "" {
		opts = append(opts, WithContinuationSuffix(input.ContinuationSuffix))
	}
	return NewPaginator(geo, placer, opts...)
}

// resolveMetadata expands date tokens and defaults the title to the first
// slide title.
func (c *Converter) resolveMetadata(m Metadata, slides []Slide) (Metadata, error) {
	date, err := dateutil.ResolveDate(m.Date, c.now())
	if err != nil {
		return Metadata{}, fmt.Errorf("resolving date: %w", err)
	}
	m.Date = date
	if m.Title == "" {
		m.Title = slides[0].Title
	}
	return m, nil
}

// renderHTML renders the paginated deck to a standalone HTML document.
func (c *Converter) renderHTML(ctx context.Context, geo Geometry, meta Metadata, pages []Page, input Input) (string, error) {
	htmlContent, err := c.deckRenderer.RenderDeck(ctx, toDeckData(geo, meta, pages))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}

	htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
	if err != nil {
		return "", fmt.Errorf("rewriting relative paths: %w", err)
	}

	// User CSS goes last so it overrides the style and highlighting.
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.style, c.highlightCSS, input.CSS)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return htmlContent, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.style = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.style = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.style = css
	return nil
}

// validateInput checks the fields a library caller may set directly.
// CLI input is already validated by config.Validate; both paths meet here.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Layout.Validate(); err != nil {
		return err
	}
	return input.Format.Validate()
}

// toDeckData converts paginated pages to the template view model.
func toDeckData(geo Geometry, meta Metadata, pages []Page) *pipeline.DeckData {
	data := &pipeline.DeckData{
		Title:       meta.Title,
		Author:      meta.Author,
		Company:     meta.Company,
		Date:        meta.Date,
		PageWidth:   geo.PageWidth,
		PageHeight:  geo.PageHeight,
		TitleBox:    pipeline.Box{X: geo.MarginX, Y: geo.TitleTop, W: geo.ContentWidth(), H: geo.TitleHeight},
		SubtitleBox: pipeline.Box{X: geo.MarginX, Y: geo.SubtitleTop, W: geo.ContentWidth(), H: geo.SubtitleHeight},
		Pages:       make([]pipeline.PageData, 0, len(pages)),
	}

	for _, p := range pages {
		pd := pipeline.PageData{
			Slide:        p.SlideIndex + 1,
			Title:        p.Title,
			Subtitle:     p.Subtitle,
			Background:   p.Background,
			Notes:        p.Notes,
			Continuation: !p.First,
			Blocks:       make([]pipeline.BlockData, 0, len(p.Placements)),
		}
		for _, pl := range p.Placements {
			pd.Blocks = append(pd.Blocks, toBlockData(pl))
		}
		data.Pages = append(data.Pages, pd)
	}
	return data
}

// toBlockData converts one placement. Split heads lose the trailing
// separator they keep for lossless concatenation.
func toBlockData(pl PlacedBlock) pipeline.BlockData {
	bd := pipeline.BlockData{
		Kind: string(pl.Block.Kind()),
		Box:  pipeline.Box(pl.Rect),
	}
	switch v := pl.Block.(type) {
	case Paragraph:
		bd.Text = strings.TrimSuffix(v.Text, "\n")
	case Bullets:
		bd.Items = make([]pipeline.ItemData, 0, len(v.Items))
		for _, it := range v.Items {
			bd.Items = append(bd.Items, pipeline.ItemData{
				Text:     it.Text,
				Numbered: it.Kind == BulletNumbered,
				Level:    it.IndentLevel,
			})
		}
	case Image:
		bd.Alt = v.AltText
		bd.Src = v.Path
		bd.Sizing = string(v.Sizing)
	case Code:
		bd.Text = strings.TrimSuffix(v.Text, "\n")
		bd.Language = v.Language
	case Table:
		bd.Rows = v.Rows
	}
	return bd
}
