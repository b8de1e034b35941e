// Package config loads md2deck YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// userConfigSubdir is searched under os.UserConfigDir for named configs.
const userConfigSubdir = "go-md2deck"

// Field length limits.
const (
	MaxTitleLength   = 200
	MaxNameLength    = 100
	MaxCompanyLength = 100
	MaxDateLength    = 60 // "March 5, 2026" or "auto:dddd, MMMM D, YYYY"
	MaxLayoutLength  = 20
	MaxStyleLength   = 100
	MaxSuffixLength  = 40
	MaxPathLength    = 4096
)

// Config holds every setting a config file may provide. Zero values mean
// "not set" and leave the CLI default in place.
type Config struct {
	Deck     DeckConfig     `yaml:"deck"`
	Metadata MetadataConfig `yaml:"metadata"`
	Style    StyleConfig    `yaml:"style"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	Log      LogConfig      `yaml:"log"`
}

// DeckConfig defines pagination options.
type DeckConfig struct {
	Layout             string `yaml:"layout"`             // 16x9, 16x10, 4x3, wide
	Background         string `yaml:"background"`         // default slide background image
	ContinuationSuffix string `yaml:"continuationSuffix"` // appended to continuation page titles
}

// MetadataConfig defines document properties.
type MetadataConfig struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Company string `yaml:"company"`
	Date    string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// StyleConfig defines deck styling.
type StyleConfig struct {
	Name string `yaml:"name"` // built-in or custom style name, or a CSS file path
	CSS  string `yaml:"css"`  // extra CSS file appended after the style
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// PDFConfig defines browser rendering options.
type PDFConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// validLogLevels and validLogFormats list the accepted log settings.
var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks field lengths and enumerated values. It is called by
// LoadConfig and is available to callers that build a Config by hand.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"deck.layout", c.Deck.Layout, MaxLayoutLength},
		{"deck.background", c.Deck.Background, MaxPathLength},
		{"deck.continuationSuffix", c.Deck.ContinuationSuffix, MaxSuffixLength},
		{"metadata.title", c.Metadata.Title, MaxTitleLength},
		{"metadata.author", c.Metadata.Author, MaxNameLength},
		{"metadata.company", c.Metadata.Company, MaxCompanyLength},
		{"metadata.date", c.Metadata.Date, MaxDateLength},
		{"style.name", c.Style.Name, MaxStyleLength},
		{"style.css", c.Style.CSS, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateEnum("log.level", c.Log.Level, validLogLevels); err != nil {
		return err
	}
	if err := validateEnum("log.format", c.Log.Format, validLogFormats); err != nil {
		return err
	}

	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.PDF.Timeout)
		}
	}
	return nil
}

// TimeoutDuration returns the parsed PDF timeout, or 0 when unset.
// Call Validate first; an invalid value also yields 0.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0
	}
	return d
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a config with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads a config from a file path or a config name.
// A value containing a path separator is read as is; a name is searched as
// NAME.yaml then NAME.yml in the current directory and then in the
// go-md2deck user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists where a named config is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigSubdir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
