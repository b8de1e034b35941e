package assets

import (
	"fmt"
	"regexp"
)

const (
	// DefaultStyleName is the built-in style used when none is configured.
	DefaultStyleName = "default"

	// DefaultTemplateName is the deck template every conversion renders.
	DefaultTemplateName = "deck"
)

// assetKind locates one family of assets inside an asset directory.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name, relative to the asset root.
func (k assetKind) file(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return k.dir + "/" + name + k.ext, nil
}

func (k assetKind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// assetNamePattern allows letters, digits, '-' and '_', starting with a letter or digit.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName rejects names that could address anything other than a
// single file stem: separators, dots and empty names.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
