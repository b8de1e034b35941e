package assets

import (
	"embed"
	"io/fs"
	"slices"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

var _ AssetLoader = (*EmbeddedLoader)(nil)

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: embedded}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

// StyleNames returns the sorted names of the embedded styles.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := fs.ReadDir(e.fsys, styleKind.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), styleKind.ext); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (e *EmbeddedLoader) load(kind assetKind, name string) (string, error) {
	file, err := kind.file(name)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		return "", kind.missing(name)
	}
	return string(data), nil
}
