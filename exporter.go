package draftkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-draftkit/internal/assets"
	"github.com/alnah/go-draftkit/internal/mdimage"
	"github.com/alnah/go-draftkit/internal/printhtml"
)

// ExportInput is one document to export.
type ExportInput struct {
	Content string
	// Options nil means DefaultExportOptions.
	Options *ExportOptions
	// AcknowledgeIssues lets a gated export proceed despite major issues.
	AcknowledgeIssues bool
	// BaseDir resolves relative image paths on the print path.
	BaseDir string
}

// ExportResult is the outcome of Export.
type ExportResult struct {
	Mode     ExportMode
	FileName string
	PDF      []byte
	// HTML is the printable document when the print path was used.
	HTML      []byte
	Preflight PreflightResult
}

// Exporter routes documents to the print path or the built-in serializer.
// Create with NewExporter, use Export, and Close when done.
type Exporter struct {
	cfg       exporterConfig
	renderer  *printhtml.Renderer
	printer   printer
	serialize func(content string, opts *ExportOptions, now time.Time) ([]byte, error)
}

// NewExporter creates an Exporter. The browser is not started until a
// document needs the print path.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{
			timeout:      defaultTimeout,
			imageTimeout: DefaultImageTimeout,
			settleDelay:  DefaultSettleDelay,
			now:          time.Now,
		},
		serialize: buildPDF,
	}

	for _, opt := range opts {
		opt(e)
	}

	resolver := assets.Default()
	if e.cfg.assetPath != "" {
		var err error
		resolver, err = assets.NewAssetResolver(e.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
	}

	renderer, err := printhtml.NewRenderer(resolver)
	if err != nil {
		return nil, err
	}
	e.renderer = renderer

	if e.printer == nil {
		e.printer = newRodPrinter(e.cfg.timeout, e.cfg.imageTimeout, e.cfg.settleDelay)
	}

	return e, nil
}

// Export produces a PDF for input.Content.
//
// Documents with an image line try the print path first and fall back to
// the serializer; all others try the serializer first and fall back to the
// print path. When both fail the result has ModeFailed and the error wraps
// ErrExportFailed. A gated exporter returns ErrPreflightBlocked, with the
// preflight report in the result, for unacknowledged major issues.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, input ExportInput) (result *ExportResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	opts := input.Options
	if opts == nil {
		opts = DefaultExportOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ExportResult{
		Mode:      ModeFailed,
		FileName:  SanitizeFileName(opts.ResolvedTitle()),
		Preflight: Analyze(input.Content),
	}

	if e.cfg.preflightGate && res.Preflight.Blocking() && !input.AcknowledgeIssues {
		return res, ErrPreflightBlocked
	}

	attempts := []func(context.Context, ExportInput, *ExportOptions, *ExportResult) error{e.viaSerializer, e.viaPrint}
	if mdimage.ContainsImage(input.Content) {
		attempts[0], attempts[1] = attempts[1], attempts[0]
	}

	var errs []error
	for _, attempt := range attempts {
		err := attempt(ctx, input, opts, res)
		if err == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		errs = append(errs, err)
	}

	return res, fmt.Errorf("%w: %w", ErrExportFailed, errors.Join(errs...))
}

// viaSerializer runs the built-in PDF serializer.
func (e *Exporter) viaSerializer(_ context.Context, input ExportInput, opts *ExportOptions, res *ExportResult) error {
	data, err := e.serialize(input.Content, opts, e.cfg.now())
	if err != nil {
		return err
	}
	res.Mode = ModeDownload
	res.PDF = data
	return nil
}

// viaPrint renders the printable page and prints it in the browser.
func (e *Exporter) viaPrint(ctx context.Context, input ExportInput, opts *ExportOptions, res *ExportResult) error {
	page, err := e.renderer.Render(input.Content, printhtml.Options{
		Title:       opts.Title,
		Quality:     opts.Quality,
		Compression: opts.Compression,
		Metadata:    opts.IncludeMetadata,
		Watermark:   opts.Watermark,
		BaseDir:     input.BaseDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrintBlocked, err)
	}

	data, err := e.printer.Print(ctx, page)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrPrintBlocked, err)
	}

	res.Mode = ModePrint
	res.PDF = data
	res.HTML = []byte(page)
	return nil
}

// PrintHTML renders the printable page for content without printing it.
func (e *Exporter) PrintHTML(content string, opts *ExportOptions) (string, error) {
	if opts == nil {
		opts = DefaultExportOptions()
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return e.renderer.Render(content, printhtml.Options{
		Title:       opts.Title,
		Quality:     opts.Quality,
		Compression: opts.Compression,
		Metadata:    opts.IncludeMetadata,
		Watermark:   opts.Watermark,
	})
}

// Close releases resources (headless Chrome browser).
func (e *Exporter) Close() error {
	if e.printer != nil {
		return e.printer.Close()
	}
	return nil
}
