package main

import (
	"fmt"
	"io"
)

// printUsage prints the md2deck usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2deck --in <file.md> --out <file.{html,pdf,yaml}> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown outline into a paginated slide deck.")
	fmt.Fprintln(w, "The output extension selects the format: .html/.htm, .pdf, .yaml/.yml.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --in <path>           Markdown source file (required)")
	fmt.Fprintln(w, "  -o, --out <path>          Output file (required)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Deck:")
	fmt.Fprintln(w, "  -l, --layout <name>       16x9 (default), 16x10, 4x3, wide")
	fmt.Fprintln(w, "      --bg <path>           Background for slides without >bg:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata:")
	fmt.Fprintln(w, "      --title <s>           Deck title (default: first slide title)")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --company <s>         Company")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, month, full")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name (default, dark), CSS file, or raw CSS")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file applied last")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DECK_CONFIG, MD2DECK_LAYOUT, MD2DECK_STYLE, MD2DECK_TIMEOUT,")
	fmt.Fprintln(w, "  MD2DECK_AUTHOR, MD2DECK_COMPANY, MD2DECK_BG")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX (PDF output)")
}
