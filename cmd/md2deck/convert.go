package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/config"
	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/hints"
	"github.com/alnah/go-md2deck/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid arguments")
	ErrNoInput        = errors.New("--in is required")
	ErrNoOutput       = errors.New("--out is required")
	ErrInputDirectory = errors.New("input is a directory")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// filePermissions is used for the written deck: rw-r--r--.
const filePermissions = 0o644

// runConvert loads settings, converts the input file and writes the output.
// Nothing is written unless the whole conversion succeeds.
func runConvert(ctx context.Context, flags *cliFlags, env *Environment) error {
	if flags.input == "" {
		return ErrNoInput
	}
	if flags.output == "" {
		return ErrNoOutput
	}
	format, err := md2deck.FormatForExtension(filepath.Ext(flags.output))
	if err != nil {
		return err
	}

	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(flags, cfg, env)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger, env.Environ())

	layout, err := md2deck.ParseLayout(cfg.Deck.Layout)
	if err != nil {
		return err
	}

	markdown, err := readMarkdown(flags.input)
	if err != nil {
		return err
	}
	css, err := readCSS(cfg.Style.CSS)
	if err != nil {
		return err
	}

	sourceDir, err := filepath.Abs(filepath.Dir(flags.input))
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}
	background, err := resolveBackground(cfg.Deck.Background)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, logger, env.Now)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	logger.Debug("converting", slog.String("in", flags.input), slog.String("layout", string(layout)), slog.String("format", string(format)))

	res, err := conv.Convert(ctx, md2deck.Input{
		Markdown:  markdown,
		SourceDir: sourceDir,
		Layout:    layout,
		Format:    format,
		Metadata: md2deck.Metadata{
			Title:   cfg.Metadata.Title,
			Author:  cfg.Metadata.Author,
			Company: cfg.Metadata.Company,
			Date:    cfg.Metadata.Date,
		},
		Background:         background,
		CSS:                css,
		ContinuationSuffix: cfg.Deck.ContinuationSuffix,
	})
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(flags.output, res.Output(format), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	logger.Info("wrote deck",
		slog.String("out", flags.output),
		slog.Int("slides", len(res.Slides)),
		slog.Int("pages", len(res.Pages)),
		slog.Int("dropped", res.Dropped),
	)
	return nil
}

// loadConfig loads the config named by the flag, else by MD2DECK_CONFIG.
// No name means defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			hint = hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Non-empty flags win.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Deck.Layout, flags.layout)
	set(&cfg.Deck.Background, flags.background)
	set(&cfg.Metadata.Title, flags.metadata.title)
	set(&cfg.Metadata.Author, flags.metadata.author)
	set(&cfg.Metadata.Company, flags.metadata.company)
	set(&cfg.Metadata.Date, flags.metadata.date)
	set(&cfg.Style.Name, flags.style.style)
	set(&cfg.Style.CSS, flags.style.css)
	set(&cfg.Assets.BasePath, flags.style.assetPath)
	set(&cfg.PDF.Timeout, flags.timeout)
}

// newLogger builds the stderr logger. --quiet and --verbose override the
// configured level.
func newLogger(flags *cliFlags, cfg *config.Config, env *Environment) (*slog.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	switch {
	case flags.common.quiet:
		opts.Level = "error"
	case flags.common.verbose:
		opts.Level = "debug"
	}
	return logging.New(env.Stderr, opts)
}

// converterOptions maps config values to library options.
func converterOptions(cfg *config.Config, logger *slog.Logger, now func() time.Time) []md2deck.Option {
	opts := []md2deck.Option{md2deck.WithLogger(logger), md2deck.WithClock(now)}
	if cfg.Style.Name != "" {
		opts = append(opts, md2deck.WithStyle(cfg.Style.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2deck.WithAssetPath(cfg.Assets.BasePath))
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, md2deck.WithTimeout(d))
	}
	return opts
}

// readMarkdown reads the source file, rejecting directories.
func readMarkdown(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInputDirectory, path)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// readCSS reads the extra CSS file, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// resolveBackground makes a relative --bg path absolute against the working
// directory; slide-level >bg: paths stay relative to the input file.
func resolveBackground(bg string) (string, error) {
	if bg == "" || fileutil.IsURL(bg) || filepath.IsAbs(bg) {
		return bg, nil
	}
	abs, err := filepath.Abs(bg)
	if err != nil {
		return "", fmt.Errorf("resolving background: %w", err)
	}
	return abs, nil
}
