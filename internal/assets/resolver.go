package assets

import "errors"

// AssetResolver tries its loaders in order. A miss moves on to the next
// loader; any other error stops the search so a broken custom asset is
// reported instead of silently replaced.
type AssetResolver struct {
	loaders []AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver puts the loader for customDir, when set, in front of
// the embedded assets.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customDir != "" {
		custom, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(AssetLoader.LoadStyle, name)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(AssetLoader.LoadTemplate, name)
}

func (r *AssetResolver) first(load func(AssetLoader, string) (string, error), name string) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l, name)
		if err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
