package md2deck

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Format selects the rendered output.
type Format string

// Output formats.
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
)

// formatExtensions maps recognized output file extensions to formats.
var formatExtensions = map[string]Format{
	".html": FormatHTML,
	".htm":  FormatHTML,
	".pdf":  FormatPDF,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatForExtension returns the format for a file extension such as ".pdf".
func FormatForExtension(ext string) (Format, error) {
	f, ok := formatExtensions[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("%w: extension %q (must be .html, .htm, .pdf, .yaml or .yml)", ErrInvalidFormat, ext)
	}
	return f, nil
}

// Validate checks that the format is known. The zero value means HTML.
func (f Format) Validate() error {
	switch f {
	case "", FormatHTML, FormatPDF, FormatYAML:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, string(f))
}

// Metadata describes the deck as a whole.
type Metadata struct {
	Title   string
	Author  string
	Company string
	Date    string // literal, or "auto"/"auto:FORMAT" resolved by ResolveDate
}

// Input contains conversion parameters.
type Input struct {
	Markdown   string   // Source text (required)
	SourceDir  string   // Base for relative image paths (optional)
	Layout     Layout   // Page aspect ratio (zero = DefaultLayout)
	Format     Format   // Output format (zero = FormatHTML)
	Metadata   Metadata // Document properties (optional)
	Background string   // Fallback background for slides without one (optional)
	CSS        string   // Extra CSS appended after the style (optional)

	// ContinuationSuffix replaces DefaultContinuationSuffix when set.
	ContinuationSuffix string
}

// ConvertResult holds the conversion outputs.
type ConvertResult struct {
	Slides  []Slide
	Pages   []Page
	Dropped int    // blocks dropped by the forced placement fallback
	HTML    []byte // deck HTML, set for html and pdf formats
	PDF     []byte // set for pdf format
	YAML    []byte // set for yaml format
}

// Output returns the bytes for the requested format.
func (r *ConvertResult) Output(f Format) []byte {
	switch f {
	case FormatPDF:
		return r.PDF
	case FormatYAML:
		return r.YAML
	default:
		return r.HTML
	}
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	styleInput string // name, file path, or raw CSS
	assetPath  string
	logger     *slog.Logger
	placer     func(Geometry) Placer
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2deck: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the deck style: a built-in name, a CSS file path, or raw CSS.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles and templates override the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLogger sets the logger for conversion warnings (e.g. dropped content).
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithClock sets the time source used to expand "auto" dates.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// WithPlacer replaces the default FitPlacer. The factory receives the
// geometry of each conversion so placer and paginator share one table.
func WithPlacer(factory func(Geometry) Placer) Option {
	return func(c *Converter) {
		c.cfg.placer = factory
	}
}
