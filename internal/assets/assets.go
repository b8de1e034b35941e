// Package assets provides CSS styles and HTML templates for deck rendering.
// Assets can be loaded from embedded files or custom filesystem paths.
package assets

// AssetLoader loads deck styles and templates by bare name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or an ErrStyleNotFound error.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html or an ErrTemplateNotFound error.
	LoadTemplate(name string) (string, error)
}

var defaultLoader = NewEmbeddedLoader()

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
