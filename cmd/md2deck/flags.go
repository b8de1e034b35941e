package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// metadataFlags holds deck metadata flags.
type metadataFlags struct {
	title   string
	author  string
	company string
	date    string
}

// styleFlags holds styling flags.
type styleFlags struct {
	style     string // built-in name, CSS file path, or raw CSS
	css       string // extra CSS file appended after the style
	assetPath string
}

// commonFlags holds diagnostic and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// cliFlags holds every md2deck flag.
type cliFlags struct {
	input      string
	output     string
	layout     string
	background string
	timeout    string
	version    bool
	help       bool

	metadata metadataFlags
	style    styleFlags
	common   commonFlags
}

func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.title, "title", "", "deck title (default: first slide title)")
	fs.StringVar(&f.author, "author", "", "deck author")
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.date, "date", "", "deck date: literal, \"auto\" or \"auto:FORMAT\"")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path or raw CSS")
	fs.StringVar(&f.css, "css", "", "extra CSS file applied after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// parseFlags parses args without the program name. Flags default to empty
// so config and environment values apply unless a flag is given.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("md2deck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	fs.StringVarP(&f.input, "in", "i", "", "markdown source file (required)")
	fs.StringVarP(&f.output, "out", "o", "", "output file: .html, .pdf or .yaml (required)")
	fs.StringVarP(&f.layout, "layout", "l", "", "layout: 16x9, 16x10, 4x3, wide (default 16x9)")
	fs.StringVar(&f.background, "bg", "", "default slide background image")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addMetadataFlags(fs, &f.metadata)
	addStyleFlags(fs, &f.style)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %s (use --in)", ErrUsage, strings.Join(fs.Args(), " "))
	}
	return f, nil
}
