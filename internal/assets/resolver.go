package assets

import (
	"errors"
	"fmt"
	"html/template"
)

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when an asset is missing there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath uses embedded assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate loads an HTML template, custom directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// Page loads the template and style sharing name and parses the template.
func (r *AssetResolver) Page(name string, funcs template.FuncMap) (*template.Template, template.CSS, error) {
	src, err := r.LoadTemplate(name)
	if err != nil {
		return nil, "", err
	}
	css, err := r.LoadStyle(name)
	if err != nil {
		return nil, "", err
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s template: %w", name, err)
	}
	return tmpl, template.CSS(css), nil // #nosec G203 -- trusted asset content
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are not masked by the fallback.
	if !isNotFoundError(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
