package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alnah/go-draftkit"
)

type preflightOutput struct {
	draftkit.PreflightResult
	Blocking bool `json:"blocking"`
}

// runPreflight prints the preflight report for a document. With --strict a
// blocking report returns ErrPreflightBlocked.
func runPreflight(args []string, env *Environment) error {
	f := &preflightFlags{}
	positional, err := parseArgs(preflightFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	logger := commandLogger(env, f.common)

	if _, err := loadConfig(f.common, env, logger); err != nil {
		return err
	}

	content, err := loadDocument(positional, env)
	if err != nil {
		return err
	}

	result := draftkit.Analyze(content)
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preflightOutput{PreflightResult: result, Blocking: result.Blocking()}); err != nil {
			return err
		}
	} else {
		printPreflight(env.Stdout, result)
	}

	if f.strict && result.Blocking() {
		return draftkit.ErrPreflightBlocked
	}
	return nil
}

func printPreflight(w io.Writer, r draftkit.PreflightResult) {
	fmt.Fprintf(w, "Severity: %s\n", r.Severity)
	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  [%s] %s\n", issue.Level, issue.Title)
		fmt.Fprintf(w, "          %s\n", issue.Detail)
	}
}
