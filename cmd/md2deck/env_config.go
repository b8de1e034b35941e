package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-md2deck/internal/config"
)

// envPrefix marks md2deck environment variables.
const envPrefix = "MD2DECK_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2DECK_CONFIG: config file name or path
	Layout     string        // MD2DECK_LAYOUT: 16x9, 16x10, 4x3, wide
	Style      string        // MD2DECK_STYLE: style name, CSS file path or raw CSS
	Timeout    time.Duration // MD2DECK_TIMEOUT: PDF generation timeout
	Author     string        // MD2DECK_AUTHOR: deck author
	Company    string        // MD2DECK_COMPANY: company name
	Background string        // MD2DECK_BG: default slide background
}

// knownEnvVars lists valid MD2DECK_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2DECK_CONFIG":  true,
	"MD2DECK_LAYOUT":  true,
	"MD2DECK_STYLE":   true,
	"MD2DECK_TIMEOUT": true,
	"MD2DECK_AUTHOR":  true,
	"MD2DECK_COMPANY": true,
	"MD2DECK_BG":      true,
}

// loadEnvConfig reads MD2DECK_* values through getenv. An invalid
// MD2DECK_TIMEOUT is an error rather than a silent default.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("MD2DECK_CONFIG"),
		Layout:     getenv("MD2DECK_LAYOUT"),
		Style:      getenv("MD2DECK_STYLE"),
		Author:     getenv("MD2DECK_AUTHOR"),
		Company:    getenv("MD2DECK_COMPANY"),
		Background: getenv("MD2DECK_BG"),
	}

	if timeout := getenv("MD2DECK_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: MD2DECK_TIMEOUT %q (must be a positive duration like 30s)", ErrInvalidTimeout, timeout)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// warnUnknownEnvVars logs unrecognized MD2DECK_* variables, which are
// usually typos.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
		}
	}
}

// applyEnvConfig overrides config file values with the environment.
// Flags are merged afterwards: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Layout != "" {
		cfg.Deck.Layout = env.Layout
	}
	if env.Background != "" {
		cfg.Deck.Background = env.Background
	}
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
	if env.Author != "" {
		cfg.Metadata.Author = env.Author
	}
	if env.Company != "" {
		cfg.Metadata.Company = env.Company
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
}
