package main

// Notes:
// - runMain is exercised end to end with an injected Environment; HTML and
//   YAML outputs use the real converter (no browser), PDF uses fakeConverter
// - Stderr must hold exactly one "md2deck: " line on failure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2deck "github.com/alnah/go-md2deck"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// fakeConverter records inputs and returns a fixed result.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []md2deck.Input
	err    error
	closed bool
}

func (f *fakeConverter) Convert(_ context.Context, input md2deck.Input) (*md2deck.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &md2deck.ConvertResult{
		Slides: []md2deck.Slide{{Title: "T"}},
		Pages:  []md2deck.Page{{Title: "T", First: true}},
		HTML:   []byte("<html></html>"),
		PDF:    []byte("%PDF-1.7 fake"),
		YAML:   []byte("slides: []\n"),
	}, nil
}

func (f *fakeConverter) Close() error {
	f.closed = true
	return nil
}

// testEnv returns an environment with captured output and the given
// variables. conv replaces the real converter when non-nil.
func testEnv(vars map[string]string, conv *fakeConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := DefaultEnv()
	env.Stdout = &stdout
	env.Stderr = &stderr
	env.Now = func() time.Time { return time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) }
	env.Getenv = func(k string) string { return vars[k] }
	env.Environ = func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
	if conv != nil {
		env.NewConverter = func(...md2deck.Option) (deckConverter, error) { return conv, nil }
	}
	return env, &stdout, &stderr
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// assertOneErrorLine checks the single-line failure contract.
func assertOneErrorLine(t *testing.T, stderr, want string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "md2deck: ") {
		t.Errorf("stderr = %q, want a md2deck: line", stderr)
	}
	if strings.Count(stderr, "md2deck: ") != 1 {
		t.Errorf("stderr has more than one error line: %q", stderr)
	}
	if !strings.Contains(last, want) {
		t.Errorf("error line = %q, want it to contain %q", last, want)
	}
}

const deckSource = "# Intro\n## Hello\n- a\n- b\n\n# Next\ntext\n"

// ---------------------------------------------------------------------------
// TestRunMain - Help and Version
// ---------------------------------------------------------------------------

func TestRunMain_HelpAndVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"long help", []string{"md2deck", "--help"}, "Usage: md2deck"},
		{"short help", []string{"md2deck", "-h"}, "--layout"},
		{"version", []string{"md2deck", "--version"}, "md2deck dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil, nil)
			if code := runMain(tt.args, env); code != ExitSuccess {
				t.Fatalf("exit = %d, want %d", code, ExitSuccess)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout missing %q", tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Usage Errors
// ---------------------------------------------------------------------------

func TestRunMain_UsageErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	empty := writeFile(t, dir, "empty.md", "  \n\n")
	out := filepath.Join(dir, "deck.html")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing in", []string{"--out", out}, "--in is required"},
		{"missing out", []string{"--in", in}, "--out is required"},
		{"unknown flag", []string{"--in", in, "--out", out, "--bogus"}, "invalid arguments"},
		{"positional argument", []string{"--out", out, in}, "unexpected arguments"},
		{"bad extension", []string{"-i", in, "-o", filepath.Join(dir, "deck.pptx")}, "hint: use an output ending in"},
		{"unknown layout", []string{"-i", in, "-o", out, "-l", "a4"}, "invalid layout"},
		{"missing input", []string{"-i", filepath.Join(dir, "nope.md"), "-o", out}, "failed to read markdown file"},
		{"directory input", []string{"-i", dir, "-o", out}, "input is a directory"},
		{"empty input", []string{"-i", empty, "-o", out}, "markdown content cannot be empty"},
		{"missing css", []string{"-i", in, "-o", out, "--css", filepath.Join(dir, "x.css")}, "failed to read CSS file"},
		{"bad date", []string{"-i", in, "-o", out, "--date", "auto:"}, "invalid date"},
		{"bad timeout", []string{"-i", in, "-o", out, "-t", "soon"}, "pdf.timeout"},
		{"unknown style", []string{"-i", in, "-o", out, "--style", "neon"}, "hint: available: "},
		{"missing output dir", []string{"-i", in, "-o", filepath.Join(dir, "no", "deck.html")}, "hint: check the parent directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(nil, nil)
			if code := runMain(append([]string{"md2deck"}, tt.args...), env); code != ExitFailure {
				t.Fatalf("exit = %d, want %d", code, ExitFailure)
			}
			assertOneErrorLine(t, stderr.String(), tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Conversion
// ---------------------------------------------------------------------------

func TestRunMain_WritesHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource+"![p](pic.png)\n")
	out := filepath.Join(dir, "deck.html")

	env, _, stderr := testEnv(nil, nil)
	code := runMain([]string{"md2deck", "-i", in, "-o", out, "--author", "Ada", "--style", "dark"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	html := string(data)
	for _, want := range []string{"<title>Intro</title>", "Ada", "#111827", "file://" + filepath.ToSlash(filepath.Join(dir, "pic.png"))} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRunMain_WritesYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	out := filepath.Join(dir, "deck.yml")

	env, _, stderr := testEnv(nil, nil)
	code := runMain([]string{"md2deck", "-i", in, "-o", out, "-l", "LAYOUT_4X3", "--date", "auto"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	slides, err := md2deck.UnmarshalSlides(data)
	if err != nil {
		t.Fatalf("UnmarshalSlides() error = %v", err)
	}
	if len(slides) != 2 {
		t.Errorf("got %d slides, want 2", len(slides))
	}
	if !strings.Contains(string(data), "layout: 4x3") || !strings.Contains(string(data), "2026-03-05") {
		t.Errorf("YAML missing layout or date:\n%s", data)
	}
}

func TestRunMain_PDFUsesConverter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	writeFile(t, dir, "extra.css", ".x{}")
	out := filepath.Join(dir, "deck.pdf")
	conv := &fakeConverter{}

	env, _, stderr := testEnv(nil, conv)
	args := []string{
		"md2deck", "-i", in, "-o", out,
		"--title", "Deck", "--company", "Acme", "--bg", "bg.png",
		"--css", filepath.Join(dir, "extra.css"), "--date", "auto:YYYY",
	}
	if code := runMain(args, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "%PDF-1.7 fake" {
		t.Fatalf("output = %q, %v", data, err)
	}
	if !conv.closed {
		t.Error("converter not closed")
	}

	got := conv.inputs[0]
	wd, _ := os.Getwd()
	switch {
	case got.Format != md2deck.FormatPDF:
		t.Errorf("Format = %q", got.Format)
	case got.Layout != md2deck.Layout16x9:
		t.Errorf("Layout = %q, want default", got.Layout)
	case got.Metadata.Title != "Deck" || got.Metadata.Company != "Acme":
		t.Errorf("Metadata = %+v", got.Metadata)
	case got.Metadata.Date != "auto:YYYY":
		t.Errorf("Date = %q, want unresolved value", got.Metadata.Date)
	case got.CSS != ".x{}":
		t.Errorf("CSS = %q", got.CSS)
	case got.Background != filepath.Join(wd, "bg.png"):
		t.Errorf("Background = %q, want absolute path", got.Background)
	case got.SourceDir != dir:
		t.Errorf("SourceDir = %q, want %q", got.SourceDir, dir)
	}
}

func TestRunMain_FailedConversionWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	out := filepath.Join(dir, "deck.pdf")
	conv := &fakeConverter{err: md2deck.ErrBrowserConnect}

	env, _, stderr := testEnv(nil, conv)
	if code := runMain([]string{"md2deck", "-i", in, "-o", out}, env); code != ExitFailure {
		t.Fatalf("exit = %d, want %d", code, ExitFailure)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output exists after failure: %v", err)
	}
	assertOneErrorLine(t, stderr.String(), "hint: ")
}

// ---------------------------------------------------------------------------
// TestRunMain - Settings Precedence
// ---------------------------------------------------------------------------

func TestRunMain_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	cfgPath := writeFile(t, dir, "deck.yaml", `
deck:
  layout: wide
  continuationSuffix: " (more)"
metadata:
  author: Config Author
  company: Config Co
`)

	tests := []struct {
		name        string
		vars        map[string]string
		extra       []string
		wantLayout  md2deck.Layout
		wantAuthor  string
		wantCompany string
	}{
		{
			name:        "config file",
			extra:       []string{"-c", cfgPath},
			wantLayout:  md2deck.LayoutWide,
			wantAuthor:  "Config Author",
			wantCompany: "Config Co",
		},
		{
			name:        "env over config",
			vars:        map[string]string{"MD2DECK_LAYOUT": "16x10", "MD2DECK_AUTHOR": "Env Author"},
			extra:       []string{"-c", cfgPath},
			wantLayout:  md2deck.Layout16x10,
			wantAuthor:  "Env Author",
			wantCompany: "Config Co",
		},
		{
			name:        "flags over env",
			vars:        map[string]string{"MD2DECK_LAYOUT": "16x10", "MD2DECK_CONFIG": cfgPath},
			extra:       []string{"-l", "4x3", "--company", "Flag Co"},
			wantLayout:  md2deck.Layout4x3,
			wantAuthor:  "Config Author",
			wantCompany: "Flag Co",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &fakeConverter{}
			env, _, stderr := testEnv(tt.vars, conv)
			args := append([]string{"md2deck", "-i", in, "-o", filepath.Join(t.TempDir(), "d.pdf")}, tt.extra...)
			if code := runMain(args, env); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr = %s", code, stderr)
			}

			got := conv.inputs[0]
			if got.Layout != tt.wantLayout {
				t.Errorf("Layout = %q, want %q", got.Layout, tt.wantLayout)
			}
			if got.Metadata.Author != tt.wantAuthor || got.Metadata.Company != tt.wantCompany {
				t.Errorf("Metadata = %+v", got.Metadata)
			}
			if got.ContinuationSuffix != " (more)" {
				t.Errorf("ContinuationSuffix = %q", got.ContinuationSuffix)
			}
		})
	}
}

func TestRunMain_ConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)
	bad := writeFile(t, dir, "bad.yaml", "deck:\n  pages: 3\n")

	tests := []struct {
		name string
		vars map[string]string
		args []string
		want string
	}{
		{"named config not found", nil, []string{"-c", "no-such-deck-config"}, "hint: use --config"},
		{"config path not found", nil, []string{"-c", filepath.Join(dir, "none.yaml")}, "config file not found"},
		{"unknown config key", nil, []string{"-c", bad}, "failed to parse config"},
		{"invalid env timeout", map[string]string{"MD2DECK_TIMEOUT": "-1s"}, nil, "MD2DECK_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(tt.vars, &fakeConverter{})
			args := append([]string{"md2deck", "-i", in, "-o", filepath.Join(dir, "d.pdf")}, tt.args...)
			if code := runMain(args, env); code != ExitFailure {
				t.Fatalf("exit = %d, want %d", code, ExitFailure)
			}
			assertOneErrorLine(t, stderr.String(), tt.want)
		})
	}
}

func TestRunMain_UnknownEnvVarWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)

	env, _, stderr := testEnv(map[string]string{"MD2DECK_AUTOR": "typo"}, &fakeConverter{})
	if code := runMain([]string{"md2deck", "-i", in, "-o", filepath.Join(dir, "d.pdf")}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stderr.String(), "MD2DECK_AUTOR") {
		t.Errorf("missing typo warning, stderr = %q", stderr)
	}
}

func TestRunMain_QuietAndVerbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "deck.md", deckSource)

	tests := []struct {
		name      string
		flag      string
		wantEmpty bool
	}{
		{"quiet hides warnings", "-q", true},
		{"verbose shows progress", "-v", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(map[string]string{"MD2DECK_AUTOR": "typo"}, &fakeConverter{})
			args := []string{"md2deck", "-i", in, "-o", filepath.Join(t.TempDir(), "d.pdf"), tt.flag}
			if code := runMain(args, env); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr = %s", code, stderr)
			}
			if tt.wantEmpty != (stderr.Len() == 0) {
				t.Errorf("stderr = %q", stderr)
			}
			if !tt.wantEmpty && !strings.Contains(stderr.String(), "wrote deck") {
				t.Errorf("verbose output missing summary: %q", stderr)
			}
		})
	}
}
