package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

// qualityUnset detects if --quality was explicitly set.
// Since 0 is a valid quality, we use an out-of-range sentinel.
const qualityUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// optionFlags holds export option flags.
type optionFlags struct {
	title         string
	quality       int
	noCompression bool
	noMetadata    bool
	watermark     bool
	noWatermark   bool
}

// layoutFlags holds pagination flags.
type layoutFlags struct {
	format    string
	budget    int
	wrapWidth int
}

// printFlags holds print path flags.
type printFlags struct {
	timeout   string
	assetPath string
}

type paginateFlags struct {
	common  commonFlags
	layout  layoutFlags
	json    bool
	excerpt bool
	preview int
}

type preflightFlags struct {
	common commonFlags
	json   bool
	strict bool
}

type exportFlags struct {
	common   commonFlags
	options  optionFlags
	print    printFlags
	output   string
	workers  int
	force    bool
	gate     bool
	html     bool
	htmlOnly bool
}

type shareFlags struct {
	common  commonFlags
	options optionFlags
	baseURL string
}

type openFlags struct {
	common  commonFlags
	print   printFlags
	output  string
	content bool
	json    bool
}

type importFlags struct {
	common  commonFlags
	output  string
	into    string
	url     string
	excerpt bool
}

type inspectFlags struct {
	common commonFlags
	json   bool
}

type serveFlags struct {
	common  commonFlags
	print   printFlags
	addr    string
	workers int
	baseURL string
	maxBody int64
	gate    bool
}

type doctorFlags struct {
	json       bool
	showConfig bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

func addOptionFlags(fs *flag.FlagSet, f *optionFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.IntVar(&f.quality, "quality", qualityUnset, "export quality (0-100)")
	fs.BoolVar(&f.noCompression, "no-compression", false, "do not compress PDF streams")
	fs.BoolVar(&f.noMetadata, "no-metadata", false, "omit the PDF information dictionary")
	fs.BoolVar(&f.watermark, "watermark", false, "add a Draft watermark")
	fs.BoolVar(&f.noWatermark, "no-watermark", false, "disable the watermark")
}

func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "layout format: zine, book, catalogue, report, custom")
	fs.IntVarP(&f.budget, "budget", "b", 0, "characters per page (0 = format default)")
	fs.IntVar(&f.wrapWidth, "wrap-width", 0, "soft wrap width (0 = default)")
}

func addPrintFlags(fs *flag.FlagSet, f *printFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "print path timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

func paginateFlagSet(w io.Writer, f *paginateFlags) *flag.FlagSet {
	fs := newFlagSet("paginate", w, printPaginateUsage)
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	fs.BoolVar(&f.json, "json", false, "print pages as JSON")
	fs.BoolVar(&f.excerpt, "excerpt", false, "print the first-page excerpt only")
	fs.IntVar(&f.preview, "preview", 0, "print exactly N preview sheets (2-24)")
	return fs
}

func preflightFlagSet(w io.Writer, f *preflightFlags) *flag.FlagSet {
	fs := newFlagSet("preflight", w, printPreflightUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.strict, "strict", false, "exit with code 5 on major issues")
	return fs
}

func exportFlagSet(w io.Writer, f *exportFlags) *flag.FlagSet {
	fs := newFlagSet("export", w, printExportUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.force, "force", false, "export despite major preflight issues")
	fs.BoolVar(&f.gate, "gate", false, "refuse exports with major preflight issues")
	fs.BoolVar(&f.html, "html", false, "also write the printable HTML")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the printable HTML only, skip PDF")
	addCommonFlags(fs, &f.common)
	addOptionFlags(fs, &f.options)
	addPrintFlags(fs, &f.print)
	return fs
}

func shareFlagSet(w io.Writer, f *shareFlags) *flag.FlagSet {
	fs := newFlagSet("share", w, printShareUsage)
	addCommonFlags(fs, &f.common)
	addOptionFlags(fs, &f.options)
	fs.StringVar(&f.baseURL, "base-url", "", "base URL of the share view")
	return fs
}

func openFlagSet(w io.Writer, f *openFlags) *flag.FlagSet {
	fs := newFlagSet("open", w, printOpenUsage)
	addCommonFlags(fs, &f.common)
	addPrintFlags(fs, &f.print)
	fs.StringVarP(&f.output, "output", "o", "", "export the shared document to this PDF")
	fs.BoolVar(&f.content, "content", false, "print the shared document text")
	fs.BoolVar(&f.json, "json", false, "print the payload as JSON")
	return fs
}

func importFlagSet(w io.Writer, f *importFlags) *flag.FlagSet {
	fs := newFlagSet("import", w, printImportUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "write the document here (default: stdout)")
	fs.StringVar(&f.into, "into", "", "append to this existing document")
	fs.StringVar(&f.url, "url", "", "image URL to reference (default: the file path)")
	fs.BoolVar(&f.excerpt, "excerpt", false, "print the first-page excerpt only")
	return fs
}

func inspectFlagSet(w io.Writer, f *inspectFlags) *flag.FlagSet {
	fs := newFlagSet("inspect", w, printInspectUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	return fs
}

func serveFlagSet(w io.Writer, f *serveFlags) *flag.FlagSet {
	fs := newFlagSet("serve", w, printServeUsage)
	addCommonFlags(fs, &f.common)
	addPrintFlags(fs, &f.print)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exporters (0 = auto)")
	fs.StringVar(&f.baseURL, "base-url", "", "base URL of generated share links")
	fs.Int64Var(&f.maxBody, "max-body", 0, "request body limit in bytes")
	fs.BoolVar(&f.gate, "gate", false, "refuse exports with major preflight issues")
	return fs
}

func doctorFlagSet(w io.Writer, f *doctorFlags) *flag.FlagSet {
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.showConfig, "show-config", false, "print the effective configuration as YAML")
	return fs
}

// parseArgs parses args into fs. Flag errors are usage errors; -h returns
// flag.ErrHelp after printing usage.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// mergeOptionFlags copies explicitly set option flags over cfg.
func mergeOptionFlags(f *optionFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Export.Title = f.title
	}
	if f.quality != qualityUnset {
		cfg.Export.Quality = f.quality
	}
	if f.noCompression {
		cfg.Export.Compression = false
	}
	if f.noMetadata {
		cfg.Export.IncludeMetadata = false
	}
	if f.watermark {
		cfg.Export.Watermark = true
	}
	if f.noWatermark {
		cfg.Export.Watermark = false
	}
}

// mergeLayoutFlags copies explicitly set layout flags over cfg.
func mergeLayoutFlags(f *layoutFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Layout.Format = f.format
	}
	if f.budget != 0 {
		cfg.Layout.Budget = f.budget
	}
	if f.wrapWidth != 0 {
		cfg.Layout.WrapWidth = f.wrapWidth
	}
}

func mergePrintFlags(f *printFlags, cfg *config.Config) {
	if f.timeout != "" {
		cfg.Print.Timeout = f.timeout
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// exportOptions builds export options from the merged configuration.
func exportOptions(cfg *config.Config) *draftkit.ExportOptions {
	return &draftkit.ExportOptions{
		Title:           cfg.Export.Title,
		Quality:         cfg.Export.Quality,
		Compression:     cfg.Export.Compression,
		IncludeMetadata: cfg.Export.IncludeMetadata,
		Watermark:       cfg.Export.Watermark,
	}
}
