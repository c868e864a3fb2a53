package main

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

type paginateOutput struct {
	Format string   `json:"format"`
	Budget int      `json:"budget"`
	Count  int      `json:"count"`
	Pages  []string `json:"pages"`
}

// runPaginate splits a document into pages and prints them.
func runPaginate(args []string, env *Environment) error {
	f := &paginateFlags{}
	positional, err := parseArgs(paginateFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	logger := commandLogger(env, f.common)

	cfg, err := loadConfig(f.common, env, logger)
	if err != nil {
		return err
	}
	mergeLayoutFlags(&f.layout, cfg)

	content, err := loadDocument(positional, env)
	if err != nil {
		return err
	}

	format, err := draftkit.ParseLayoutFormat(cfg.Layout.Format)
	if err != nil {
		return err
	}
	budget, err := draftkit.ResolveBudget(cfg.Layout.Format, cfg.Layout.Budget)
	if err != nil {
		return err
	}

	if f.excerpt {
		fmt.Fprintln(env.Stdout, draftkit.Excerpt(content))
		return nil
	}

	var pages []string
	if f.preview > 0 {
		pages = draftkit.PreviewPages(content, format, f.preview)
	} else {
		pages = paginateConfigured(content, budget, cfg)
	}
	logger.Debug().Int("budget", budget).Int("pages", len(pages)).Msg("paginated")

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(paginateOutput{Format: string(format), Budget: budget, Count: len(pages), Pages: pages})
	}

	for i, page := range pages {
		if i > 0 {
			fmt.Fprintln(env.Stdout)
		}
		fmt.Fprintf(env.Stdout, "--- page %d/%d (%d chars) ---\n", i+1, len(pages), utf8.RuneCountInString(page))
		fmt.Fprintln(env.Stdout, page)
	}
	return nil
}

func paginateConfigured(content string, budget int, cfg *config.Config) []string {
	if cfg.Layout.WrapWidth > 0 {
		return draftkit.PaginateWithWrap(content, budget, cfg.Layout.WrapWidth)
	}
	return draftkit.Paginate(content, budget)
}
