package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

// runExport exports one or more documents to PDF.
func runExport(ctx context.Context, args []string, env *Environment) error {
	f := &exportFlags{}
	positional, err := parseArgs(exportFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	logger := commandLogger(env, f.common)

	cfg, err := loadConfig(f.common, env, logger)
	if err != nil {
		return err
	}
	mergeOptionFlags(&f.options, cfg)
	mergePrintFlags(&f.print, cfg)

	options := exportOptions(cfg)
	if err := options.Validate(); err != nil {
		return err
	}

	outputDir := f.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	files, err := collectExportFiles(positional, outputDir, options, env)
	if err != nil {
		return err
	}

	exporterOpts, err := exporterOptions(cfg, env, f.gate)
	if err != nil {
		return err
	}

	workers := f.workers
	if workers == 0 {
		workers = cfg.Server.Workers
	}
	poolSize := min(draftkit.ResolvePoolSize(workers), len(files))
	logger.Debug().Int("files", len(files)).Int("pool", poolSize).Msg("starting export")

	pool := env.NewPool(poolSize, exporterOpts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing exporters")
		}
	}()

	results := exportBatch(ctx, pool, files, &exportParams{
		options:     options,
		acknowledge: f.force,
		html:        f.html,
		htmlOnly:    f.htmlOnly,
	})
	return printResults(results, f.common.quiet, f.common.verbose, env)
}

// collectExportFiles expands the positional arguments into export jobs.
// "-" reads one document from stdin.
func collectExportFiles(args []string, outputDir string, options *draftkit.ExportOptions, env *Environment) ([]FileToExport, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: pass a file, a directory or - for stdin", ErrNoInput)
	}

	var files []FileToExport
	for _, arg := range args {
		if arg == "-" {
			file, err := stdinExportFile(outputDir, options, env)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
			continue
		}
		found, err := discoverFiles(arg, outputDir)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no documents found in %v", ErrNoInput, args)
	}
	return files, nil
}

// stdinExportFile reads stdin once; the PDF is named after the title.
func stdinExportFile(outputDir string, options *draftkit.ExportOptions, env *Environment) (FileToExport, error) {
	_, data, err := readInput("-", env)
	if err != nil {
		return FileToExport{}, err
	}

	output := outputDir
	if filepath.Ext(output) != ".pdf" {
		title := options.Title
		if title == "" {
			title = firstHeading(string(data))
		}
		output = filepath.Join(outputDir, draftkit.SanitizeFileName(title))
	}
	return FileToExport{InputPath: "-", OutputPath: output, data: data}, nil
}

// exporterOptions maps the print and export configuration onto exporter
// options.
func exporterOptions(cfg *config.Config, env *Environment, gate bool) ([]draftkit.Option, error) {
	opts := []draftkit.Option{
		draftkit.WithClock(env.Now),
		draftkit.WithPreflightGate(gate || cfg.Export.PreflightGate),
	}

	timeout, err := config.ParseDuration(cfg.Print.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: timeout: %v", config.ErrInvalidValue, err)
	}
	if timeout > 0 {
		opts = append(opts, draftkit.WithTimeout(timeout))
	}

	imageTimeout, err := config.ParseDuration(cfg.Print.ImageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: print.imageTimeout: %v", config.ErrInvalidValue, err)
	}
	if imageTimeout > 0 {
		opts = append(opts, draftkit.WithImageTimeout(imageTimeout))
	}

	if cfg.Print.SettleDelay != "" {
		settle, err := config.ParseDuration(cfg.Print.SettleDelay)
		if err != nil {
			return nil, fmt.Errorf("%w: print.settleDelay: %v", config.ErrInvalidValue, err)
		}
		opts = append(opts, draftkit.WithSettleDelay(settle))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, draftkit.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}
