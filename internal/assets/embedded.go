package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates/*.html
var templates embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/{name}.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(styles, "styles/"+name+".css", name, ErrStyleNotFound)
}

// LoadTemplate returns templates/{name}.html.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded(templates, "templates/"+name+".html", name, ErrTemplateNotFound)
}

func readEmbedded(fsys embed.FS, path, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
