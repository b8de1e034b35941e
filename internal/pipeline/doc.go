// Package pipeline implements the text and HTML stages of deck rendering.
//
// The stages are:
//   - source normalization (BOM, Unicode NFC)
//   - inline Markdown and highlighted code rendering via goldmark and chroma
//   - deck HTML rendering from a paginated view model with html/template
//   - relative path rewriting for images and links
//   - CSS injection into the rendered document
//
// Parsing and pagination live in the root md2deck package; PDF printing
// is done there as well, with headless Chrome.
package pipeline
