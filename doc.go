// Package md2deck converts markdown-like text into paginated slide decks.
//
// # Quick Start
//
// Create a converter, convert text, and close when done:
//
//	conv, err := md2deck.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2deck.Input{
//	    Markdown: "# Hello\n\n- one\n- two\n",
//	    Format:   md2deck.FormatPDF,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("deck.pdf", result.PDF, 0644)
//
// # Conversion Pipeline
//
//  1. Normalization (byte order mark, Unicode NFC)
//  2. Parse: one Slide per "# " heading, each holding typed blocks
//  3. Paginate: blocks are placed top down on fixed-size pages; paragraphs,
//     bullets and code split on whole lines, anything else moves to the next
//     page, and continuation pages get a suffixed title
//  4. Render: HTML (one section per page), PDF via headless Chrome (go-rod),
//     or a YAML document of slides and placements
//
// Parse, Paginator and FitPlacer are usable on their own; Converter only
// wires them together.
//
// # Source Dialect
//
//	# Title                  starts a slide
//	## Subtitle              sets the subtitle of the current slide
//	- item / * item / 1. item  bullets, two spaces per indent level (max 3)
//	```lang ... ```          fenced code
//	| a | b |                table row, alignment rows are dropped
//	![alt](path#cover)       image, optional #cover or #contain
//	>note: text              speaker notes
//	>bg: path                slide background
//
// Every other non-blank line is paragraph text.
//
// # Configuration
//
//	conv, err := md2deck.NewConverter(
//	    md2deck.WithTimeout(2 * time.Minute),
//	    md2deck.WithStyle("dark"),
//	    md2deck.WithAssetPath("/path/to/assets"),
//	    md2deck.WithLogger(slog.Default()),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2deck.Input{
//	    Markdown:   content,
//	    SourceDir:  "/path/to/markdown", // for relative image paths
//	    Layout:     md2deck.Layout4x3,
//	    Background: "bg.png",
//	    Metadata:   md2deck.Metadata{Author: "Ada", Date: "auto"},
//	})
//
// # Parallel Processing
//
// For batch conversion, ConverterPool manages several browser instances:
//
//	pool := md2deck.NewConverterPool(md2deck.ResolvePoolSize(0))
//	defer pool.Close()
//
//	results := pool.ConvertBatch(ctx, inputs)
//
// # Browser Requirements
//
// PDF output requires Chrome/Chromium. go-rod downloads a managed Chromium
// on first run (~/.cache/rod/browser/). In containers and CI set
// ROD_NO_SANDBOX=1; ROD_BROWSER_BIN selects a custom binary. HTML and YAML
// output never start a browser.
package md2deck
