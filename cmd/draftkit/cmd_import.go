package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/fileutil"
)

// runImport converts a file into document text. Images are inserted as a
// reference on a page of their own.
func runImport(args []string, env *Environment) error {
	f := &importFlags{}
	positional, err := parseArgs(importFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: import takes exactly one file", ErrUsage)
	}
	logger := commandLogger(env, f.common)
	if _, err := loadConfig(f.common, env, logger); err != nil {
		return err
	}

	path := positional[0]
	remote := fileutil.IsURL(path)
	if remote && !draftkit.IsImageFile(path) {
		return fmt.Errorf("%w: only images can be imported from a URL", ErrUsage)
	}

	var base string
	if f.into != "" {
		_, data, err := readFile(f.into)
		if err != nil {
			return err
		}
		base = string(data)
	}

	var doc string
	if draftkit.IsImageFile(path) {
		ref := f.url
		switch {
		case ref != "":
		case remote:
			ref = path
		default:
			ref = filepath.ToSlash(path)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		doc = draftkit.InsertImage(base, name, ref)
		logger.Debug().Str("image", ref).Msg("image inserted on its own page")
	} else {
		name, data, err := readInput(path, env)
		if err != nil {
			return err
		}
		imported, err := draftkit.ImportFile(name, data)
		if err != nil {
			return err
		}
		doc = appendDocument(base, imported)
		logger.Debug().Str("file", name).Int("pages", len(draftkit.Paginate(doc, draftkit.DefaultBudget))).Msg("imported")
	}

	if f.excerpt {
		fmt.Fprintln(env.Stdout, draftkit.Excerpt(doc))
		return nil
	}

	target := f.output
	if target == "" {
		target = f.into
	}
	if target == "" {
		fmt.Fprint(env.Stdout, doc)
		if !strings.HasSuffix(doc, "\n") {
			fmt.Fprintln(env.Stdout)
		}
		return nil
	}
	if err := fileutil.WriteFile(target, []byte(doc)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Wrote %s\n", target)
	}
	return nil
}

// appendDocument joins imported text to an existing document with a blank
// line between them.
func appendDocument(base, imported string) string {
	base = strings.TrimRight(base, "\n")
	if strings.TrimSpace(base) == "" {
		return imported
	}
	return base + "\n\n" + imported
}
