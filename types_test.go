package md2deck

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestFormatForExtension - Output Extension Mapping
// ---------------------------------------------------------------------------

func TestFormatForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		want    Format
		wantErr error
	}{
		{".html", FormatHTML, nil},
		{".htm", FormatHTML, nil},
		{".HTML", FormatHTML, nil},
		{".pdf", FormatPDF, nil},
		{".yaml", FormatYAML, nil},
		{".yml", FormatYAML, nil},
		{".pptx", "", ErrInvalidFormat},
		{"", "", ErrInvalidFormat},
		{"pdf", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			got, err := FormatForExtension(tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FormatForExtension(%q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		wantErr error
	}{
		{"zero value", "", nil},
		{"html", FormatHTML, nil},
		{"pdf", FormatPDF, nil},
		{"yaml", FormatYAML, nil},
		{"unknown", Format("pptx"), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.format.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertResult_Output - Format Selection
// ---------------------------------------------------------------------------

func TestConvertResult_Output(t *testing.T) {
	t.Parallel()

	res := &ConvertResult{
		HTML: []byte("html"),
		PDF:  []byte("pdf"),
		YAML: []byte("yaml"),
	}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatHTML, "html"},
		{"", "html"},
		{FormatPDF, "pdf"},
		{FormatYAML, "yaml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			if got := string(res.Output(tt.format)); got != tt.want {
				t.Errorf("Output(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Functional Options
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets timeout", func(t *testing.T) {
		t.Parallel()

		c := &Converter{}
		WithTimeout(2 * time.Minute)(c)
		if c.cfg.timeout != 2*time.Minute {
			t.Errorf("timeout = %v, want 2m", c.cfg.timeout)
		}
	})

	for _, d := range []time.Duration{0, -time.Second} {
		t.Run("panics on "+d.String(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		})
	}
}

func TestWithPlacer(t *testing.T) {
	t.Parallel()

	var got Geometry
	c := &Converter{}
	WithPlacer(func(g Geometry) Placer {
		got = g
		return NewFitPlacer(g)
	})(c)

	geo := NewGeometry(Layout4x3)
	if p := c.paginator(geo, Input{}); p == nil {
		t.Fatal("paginator() returned nil")
	}
	if got != geo {
		t.Errorf("placer factory received %+v, want %+v", got, geo)
	}
}
