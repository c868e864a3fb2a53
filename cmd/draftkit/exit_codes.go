package main

import (
	"errors"
	"os"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

// Exit codes for the draftkit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Command completed
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, input or validation
	ExitIO        = 3 // File not found, permission denied
	ExitBrowser   = 4 // Browser/Chrome errors
	ExitPreflight = 5 // Export refused by the preflight gate
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, draftkit.ErrPreflightBlocked) {
		return ExitPreflight
	}

	// Browser errors (exit 4)
	if errors.Is(err, draftkit.ErrBrowserConnect) ||
		errors.Is(err, draftkit.ErrPageCreate) ||
		errors.Is(err, draftkit.ErrPageLoad) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, draftkit.ErrEmptyContent) ||
		errors.Is(err, draftkit.ErrInvalidQuality) ||
		errors.Is(err, draftkit.ErrInvalidBudget) ||
		errors.Is(err, draftkit.ErrInvalidLayout) ||
		errors.Is(err, draftkit.ErrInvalidAssetPath) ||
		errors.Is(err, draftkit.ErrUnsupportedImport) ||
		errors.Is(err, draftkit.ErrShareLinkTooLong) ||
		errors.Is(err, ErrInvalidShareLink) ||
		errors.Is(err, ErrInvalidPDF) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
