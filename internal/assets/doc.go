// Package assets provides the CSS styles and HTML templates used to render
// print and share views.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by renderers. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a directory may override only the assets it cares about.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── print.css
//	│   └── share.css
//	└── templates/
//	    ├── print.html
//	    └── share.html
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
