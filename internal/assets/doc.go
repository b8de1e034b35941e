// Package assets provides CSS styles and HTML templates for deck rendering.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and the deck template
//	    ├── FilesystemLoader  - a custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// AssetResolver is the loader used by the converter, so a custom directory
// can override a single style or the deck template while keeping the rest.
//
// # Directory Structure
//
//	{dir}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── deck.html
//
// # Deck Template
//
// The deck template receives a pipeline.DeckData value and has access to
// the inline, code, box and inch functions. Every page is a
// <section class="page"> sized to the layout; blocks are absolutely
// positioned from the boxes computed by the paginator.
//
// # Security
//
// Asset names may not contain separators or dots. FilesystemLoader reads
// through an os.Root, so symlinks pointing outside the directory fail with
// ErrAssetRead instead of falling back to an embedded asset.
package assets
