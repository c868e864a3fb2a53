package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/fileutil"
)

// exportParams groups parameters shared across batch/file exports.
type exportParams struct {
	options     *draftkit.ExportOptions
	acknowledge bool
	html        bool
	htmlOnly    bool
}

// ExportOutcome holds the outcome of a single export.
type ExportOutcome struct {
	InputPath  string
	OutputPath string
	Mode       draftkit.ExportMode
	Severity   draftkit.Severity
	Err        error
	Duration   time.Duration
}

// exportBatch processes files concurrently using the exporter pool.
func exportBatch(ctx context.Context, pool Pool, files []FileToExport, params *exportParams) []ExportOutcome {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ExportOutcome, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exp := pool.Acquire()
			if exp == nil {
				initErr := ErrExporterInit
				if err := pool.InitError(); err != nil {
					initErr = fmt.Errorf("%w: %w", ErrExporterInit, err)
				}
				for idx := range jobs {
					results[idx] = ExportOutcome{InputPath: files[idx].InputPath, Err: initErr}
				}
				return
			}
			defer pool.Release(exp)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ExportOutcome{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = exportFile(ctx, exp, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile imports and exports one document.
func exportFile(ctx context.Context, exp Exporter, f FileToExport, params *exportParams) ExportOutcome {
	start := time.Now()
	out := ExportOutcome{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ExportOutcome {
		out.Err = err
		out.Duration = time.Since(start)
		return out
	}

	name, data := stdinName, f.data
	if data == nil {
		var err error
		if name, data, err = readFile(f.InputPath); err != nil {
			return finish(err)
		}
	}
	content, err := draftkit.ImportFile(name, data)
	if err != nil {
		return finish(err)
	}

	opts := *params.options
	if opts.Title == "" {
		opts.Title = firstHeading(content)
	}

	if params.htmlOnly {
		page, err := exp.PrintHTML(content, &opts)
		if err != nil {
			return finish(err)
		}
		out.OutputPath = htmlOutputPath(f.OutputPath)
		if err := fileutil.WriteFile(out.OutputPath, []byte(page)); err != nil {
			return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
		}
		return finish(nil)
	}

	res, err := exp.Export(ctx, draftkit.ExportInput{
		Content:           content,
		Options:           &opts,
		AcknowledgeIssues: params.acknowledge,
		BaseDir:           baseDir(f.InputPath),
	})
	if res != nil {
		out.Mode = res.Mode
		out.Severity = res.Preflight.Severity
	}
	if err != nil {
		return finish(err)
	}

	if params.html && len(res.HTML) > 0 {
		if err := fileutil.WriteFile(htmlOutputPath(f.OutputPath), res.HTML); err != nil {
			return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
		}
	}
	if err := fileutil.WriteFile(f.OutputPath, res.PDF); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	return finish(nil)
}

// baseDir is where relative image paths of a document resolve.
func baseDir(inputPath string) string {
	if inputPath == "-" {
		return "."
	}
	return filepath.Dir(inputPath)
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []ExportOutcome) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each outcome and returns the first failure, wrapped
// with the failure count so exit codes follow its cause.
func printResults(results []ExportOutcome, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)

	var first error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s [%s, preflight %s] (%v)\n",
				r.InputPath, r.OutputPath, r.Mode, r.Severity, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if first == nil {
		return nil
	}
	if summary.Failed == 1 && len(results) == 1 {
		return first
	}
	return fmt.Errorf("%d of %d exports failed: %w", summary.Failed, len(results), first)
}
