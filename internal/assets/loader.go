package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	PrintName = "print"
	ShareName = "share"
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

var defaultResolver = &AssetResolver{embedded: NewEmbeddedLoader()}

// Default returns a resolver backed by the embedded assets only.
func Default() *AssetResolver {
	return defaultResolver
}

// ValidateAssetName rejects empty names and names holding path separators or
// dots, so a name can never select a file outside its asset directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
