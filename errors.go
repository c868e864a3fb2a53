package draftkit

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyContent     = errors.New("document content cannot be empty")
	ErrInvalidQuality   = errors.New("invalid export quality")
	ErrInvalidBudget    = errors.New("invalid page budget")
	ErrInvalidLayout    = errors.New("invalid layout format")
	ErrPrintBlocked     = errors.New("print preview unavailable")
	ErrPDFBuild         = errors.New("PDF build failed")
	ErrExportFailed     = errors.New("could not generate file")
	ErrPreflightBlocked = errors.New("export blocked by preflight issues")

	// Share link errors.
	ErrShareLinkTooLong = errors.New("share link too long")
	ErrShareEncode      = errors.New("share link encode failed")

	// Import errors.
	ErrUnsupportedImport = errors.New("unsupported import format")
	ErrImportConversion  = errors.New("import conversion failed")

	// Browser errors, wrapped by ErrPrintBlocked.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	ErrInvalidAssetPath = errors.New("invalid asset path")
)
