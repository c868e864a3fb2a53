package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
	"github.com/alnah/go-draftkit/internal/hints"
)

// stdinName is the pseudo file name used for documents read from stdin.
const stdinName = "stdin.md"

// runMain dispatches the command in args and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "paginate":
		err = runPaginate(rest, env)
	case "preflight":
		err = runPreflight(rest, env)
	case "export":
		err = runExport(ctx, rest, env)
	case "share":
		err = runShare(rest, env)
	case "open":
		err = runOpen(ctx, rest, env)
	case "import":
		err = runImport(rest, env)
	case "inspect":
		err = runInspect(rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "draftkit %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable suffix for well-known failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, draftkit.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedConfigPaths(err))
	case errors.Is(err, draftkit.ErrShareLinkTooLong):
		return hints.ForShareTooLong()
	case errors.Is(err, draftkit.ErrPreflightBlocked):
		return hints.ForPreflightBlocked()
	case errors.Is(err, draftkit.ErrUnsupportedImport):
		return hints.ForUnsupportedImport(draftkit.SupportedImportExtensions())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// searchedConfigPaths pulls the tried paths out of a config lookup error.
func searchedConfigPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}

// readInput reads a document from path, or from stdin when path is "-".
// It returns the name used for format detection.
func readInput(path string, env *Environment) (string, []byte, error) {
	if path == "-" {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return stdinName, data, nil
	}
	return readFile(path)
}

func readFile(path string) (string, []byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return filepath.Base(path), data, nil
}

// loadDocument reads and imports a single document argument.
func loadDocument(args []string, env *Environment) (string, error) {
	path := "-"
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return "", fmt.Errorf("%w: expected one document, got %d", ErrUsage, len(args))
	}
	name, data, err := readInput(path, env)
	if err != nil {
		return "", err
	}
	return draftkit.ImportFile(name, data)
}
