package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "", want: slog.LevelWarn},
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("text hides info by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := New(&buf, Options{})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		logger.Info("hidden")
		logger.Warn("dropping block", slog.String("kind", "image"))

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("output %q should not include info records", out)
		}
		if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "kind=image") {
			t.Errorf("output %q, want text-encoded warning", out)
		}
	})

	t.Run("json with debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := New(&buf, Options{Level: "debug", Format: "json"})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		logger.Debug("paginated", slog.Int("pages", 3))

		if !strings.Contains(buf.String(), `"pages":3`) {
			t.Errorf("output %q, want JSON record", buf.String())
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
			t.Error("New() expected error for unknown format")
		}
		if _, err := New(&bytes.Buffer{}, Options{Level: "loud"}); err == nil {
			t.Error("New() expected error for unknown level")
		}
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	Discard().Error("nothing happens")
}
