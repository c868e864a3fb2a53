package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/fileutil"
)

// runShare encodes a document into a share link.
func runShare(args []string, env *Environment) error {
	f := &shareFlags{}
	positional, err := parseArgs(shareFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	logger := commandLogger(env, f.common)

	cfg, err := loadConfig(f.common, env, logger)
	if err != nil {
		return err
	}
	mergeOptionFlags(&f.options, cfg)
	if f.baseURL != "" {
		cfg.Share.BaseURL = f.baseURL
	}

	content, err := loadDocument(positional, env)
	if err != nil {
		return err
	}

	options := exportOptions(cfg)
	if options.Title == "" {
		options.Title = firstHeading(content)
	}
	if err := options.Validate(); err != nil {
		return err
	}

	link, err := draftkit.EncodeShareURL(cfg.Share.BaseURL, draftkit.NewSharePayload(content, options, env.Now()))
	if err != nil {
		return err
	}
	logger.Debug().Int("length", len(link)).Int("max", draftkit.MaxShareURLLength).Msg("share link encoded")
	fmt.Fprintln(env.Stdout, link)
	return nil
}

// runOpen decodes a share link, prints its summary and optionally exports
// the shared document.
func runOpen(ctx context.Context, args []string, env *Environment) error {
	f := &openFlags{}
	positional, err := parseArgs(openFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: open takes exactly one share link", ErrUsage)
	}
	logger := commandLogger(env, f.common)

	cfg, err := loadConfig(f.common, env, logger)
	if err != nil {
		return err
	}
	mergePrintFlags(&f.print, cfg)

	payload, ok := draftkit.DecodeShareURL(positional[0])
	if !ok {
		return ErrInvalidShareLink
	}
	options := draftkit.ShareExportOptions(payload)

	switch {
	case f.json:
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	case f.content:
		fmt.Fprintln(env.Stdout, payload.Content)
	default:
		printShareSummary(env.Stdout, payload, options)
	}

	if f.output == "" {
		return nil
	}

	exporterOpts, err := exporterOptions(cfg, env, false)
	if err != nil {
		return err
	}
	pool := env.NewPool(1, exporterOpts...)
	defer func() { _ = pool.Close() }()

	exp := pool.Acquire()
	if exp == nil {
		if err := pool.InitError(); err != nil {
			return fmt.Errorf("%w: %w", ErrExporterInit, err)
		}
		return ErrExporterInit
	}
	defer pool.Release(exp)

	res, err := exp.Export(ctx, draftkit.ExportInput{Content: payload.Content, Options: options, AcknowledgeIssues: true})
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(f.output, res.PDF); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", f.output)
	}
	return nil
}

func printShareSummary(w io.Writer, p draftkit.SharePayload, o *draftkit.ExportOptions) {
	fmt.Fprintf(w, "Title:    %s\n", p.Title)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Shared:   %s\n", p.CreatedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Pages:    %d\n", len(draftkit.Paginate(p.Content, draftkit.DefaultBudget)))
	fmt.Fprintf(w, "Quality:  %d (%s)\n", o.Quality, o.QualityHint())
	fmt.Fprintf(w, "Options:  compression %s, metadata %s, watermark %s\n",
		onOff(o.Compression), onOff(o.IncludeMetadata), onOff(o.Watermark))
	fmt.Fprintf(w, "Excerpt:  %s\n", firstLine(draftkit.Excerpt(p.Content)))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
