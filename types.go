package draftkit

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-draftkit/internal/printhtml"
)

// LayoutFormat names a page layout. It decides the character budget used
// when splitting a document into pages.
type LayoutFormat string

const (
	LayoutZine      LayoutFormat = "zine"
	LayoutBook      LayoutFormat = "book"
	LayoutCatalogue LayoutFormat = "catalogue"
	LayoutReport    LayoutFormat = "report"
	LayoutCustom    LayoutFormat = "custom"
)

// Page budgets in characters.
const (
	DefaultBudget   = 1800
	CatalogueBudget = 1400
	// ThumbnailBudget sizes the first-page excerpt shown in document lists.
	ThumbnailBudget = 1300
)

// ParseLayoutFormat converts s to a LayoutFormat. Empty means LayoutZine.
func ParseLayoutFormat(s string) (LayoutFormat, error) {
	f := LayoutFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return LayoutZine, nil
	case LayoutZine, LayoutBook, LayoutCatalogue, LayoutReport, LayoutCustom:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
}

// PageBudget returns the character budget for f. Catalogue pages are set in
// two columns and hold less text.
func PageBudget(f LayoutFormat) int {
	if f == LayoutCatalogue {
		return CatalogueBudget
	}
	return DefaultBudget
}

// ResolveBudget returns override when it is positive and the budget of
// format otherwise. A negative override or an unknown format is an error.
func ResolveBudget(format string, override int) (int, error) {
	if override < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBudget, override)
	}
	f, err := ParseLayoutFormat(format)
	if err != nil {
		return 0, err
	}
	if override > 0 {
		return override, nil
	}
	return PageBudget(f), nil
}

// Export quality bounds.
const (
	MinQuality     = 0
	MaxQuality     = 100
	DefaultQuality = 80
)

// DefaultTitle is used when an export has no title.
const DefaultTitle = printhtml.DefaultTitle

// ExportOptions configures one export.
type ExportOptions struct {
	Title           string
	Quality         int // 0-100
	Compression     bool
	IncludeMetadata bool
	Watermark       bool
}

// DefaultExportOptions returns the options a new document starts with.
func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		Quality:         DefaultQuality,
		Compression:     true,
		IncludeMetadata: true,
	}
}

// Validate checks that export options are valid.
// Returns nil if o is nil (nil means use defaults).
func (o *ExportOptions) Validate() error {
	if o == nil {
		return nil
	}
	if o.Quality < MinQuality || o.Quality > MaxQuality {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidQuality, o.Quality, MinQuality, MaxQuality)
	}
	return nil
}

// ResolvedTitle trims the title, falls back to DefaultTitle and caps the
// result at 120 characters.
func (o *ExportOptions) ResolvedTitle() string {
	if o == nil {
		return DefaultTitle
	}
	return printhtml.ResolveTitle(o.Title)
}

// QualityHint buckets the quality as "high" (85+), "medium" (60+) or "draft".
func (o *ExportOptions) QualityHint() string {
	if o == nil {
		return printhtml.QualityHint(DefaultQuality)
	}
	return printhtml.QualityHint(o.Quality)
}

// ExportMode is how an export was delivered.
type ExportMode string

const (
	// ModeDownload means the built-in serializer produced the PDF.
	ModeDownload ExportMode = "download"
	// ModePrint means the print preview path produced the PDF.
	ModePrint ExportMode = "print"
	// ModeFailed means neither path produced a file.
	ModeFailed ExportMode = "failed"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	timeout       time.Duration
	imageTimeout  time.Duration
	settleDelay   time.Duration
	preflightGate bool
	assetPath     string
	now           func() time.Time
}

// Print path defaults.
const (
	defaultTimeout      = 30 * time.Second
	DefaultImageTimeout = 1800 * time.Millisecond
	DefaultSettleDelay  = 100 * time.Millisecond
)

// WithTimeout sets the print path timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("draftkit: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithImageTimeout bounds how long the print path waits for images before
// printing anyway. Panics if d <= 0.
func WithImageTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("draftkit: WithImageTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.imageTimeout = d
	}
}

// WithSettleDelay sets the pause between page load and the image check.
// Zero disables it. Panics if d < 0.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("draftkit: WithSettleDelay duration cannot be negative")
	}
	return func(e *Exporter) {
		e.cfg.settleDelay = d
	}
}

// WithPreflightGate makes Export refuse documents with major preflight
// issues unless the input acknowledges them.
func WithPreflightGate(enabled bool) Option {
	return func(e *Exporter) {
		e.cfg.preflightGate = enabled
	}
}

// WithAssetPath loads print templates and styles from dir, falling back to
// the embedded assets for anything missing.
func WithAssetPath(dir string) Option {
	return func(e *Exporter) {
		e.cfg.assetPath = dir
	}
}

// WithClock sets the time source used for PDF creation dates.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.cfg.now = now
	}
}

// withPrinter replaces the browser printer. Used by tests.
func withPrinter(p printer) Option {
	return func(e *Exporter) {
		e.printer = p
	}
}

// withSerializer replaces the built-in serializer. Used by tests.
func withSerializer(fn func(string, *ExportOptions, time.Time) ([]byte, error)) Option {
	return func(e *Exporter) {
		e.serialize = fn
	}
}
