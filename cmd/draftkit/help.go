package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  paginate     Split a document into pages")
	fmt.Fprintln(w, "  preflight    Check a document before export")
	fmt.Fprintln(w, "  export       Export documents to PDF")
	fmt.Fprintln(w, "  share        Create a share link for a document")
	fmt.Fprintln(w, "  open         Decode a share link")
	fmt.Fprintln(w, "  import       Import a file into a document")
	fmt.Fprintln(w, "  inspect      Validate a PDF and report its page count")
	fmt.Fprintln(w, "  serve        Run the HTTP API and share view")
	fmt.Fprintln(w, "  doctor       Check system configuration")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'draftkit help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

func printOptionUsage(w io.Writer) {
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first heading)")
	fmt.Fprintln(w, "      --quality <n>         Quality (0-100)")
	fmt.Fprintln(w, "      --no-compression      Do not compress PDF streams")
	fmt.Fprintln(w, "      --no-metadata         Omit title and producer metadata")
	fmt.Fprintln(w, "      --watermark           Add a Draft watermark")
	fmt.Fprintln(w, "      --no-watermark        Disable the watermark")
	fmt.Fprintln(w)
}

func printPrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Print Path:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
}

// printPaginateUsage prints usage for the paginate command.
func printPaginateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit paginate [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split a document into pages. Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -f, --format <s>          Format: zine, book, catalogue, report, custom")
	fmt.Fprintln(w, "  -b, --budget <n>          Characters per page (0 = format default)")
	fmt.Fprintln(w, "      --wrap-width <n>      Soft wrap long lines at this width")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Print pages as JSON")
	fmt.Fprintln(w, "      --excerpt             Print the first-page excerpt only")
	fmt.Fprintln(w, "      --preview <n>         Print exactly N preview sheets (2-24)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreflightUsage prints usage for the preflight command.
func printPreflightUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit preflight [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check a document for unsupported fonts, overflow and missing images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --strict              Exit with code 5 on major issues")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export documents to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document, directory, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write the printable HTML")
	fmt.Fprintln(w, "      --html-only           Write the printable HTML only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preflight:")
	fmt.Fprintln(w, "      --gate                Refuse exports with major issues")
	fmt.Fprintln(w, "      --force               Export despite major issues")
	fmt.Fprintln(w)
	printOptionUsage(w)
	printPrintUsage(w)
	printCommonUsage(w)
}

// printShareUsage prints usage for the share command.
func printShareUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit share [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Encode a document and its export options into a share link.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --base-url <url>      Base URL of the share view")
	fmt.Fprintln(w)
	printOptionUsage(w)
	printCommonUsage(w)
}

// printOpenUsage prints usage for the open command.
func printOpenUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit open <link> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decode a share link and show the shared document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Export the shared document to this PDF")
	fmt.Fprintln(w, "      --content             Print the document text")
	fmt.Fprintln(w, "      --json                Print the payload as JSON")
	fmt.Fprintln(w)
	printPrintUsage(w)
	printCommonUsage(w)
}

// printImportUsage prints usage for the import command.
func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit import <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import a text, Markdown, HTML or image file into a document.")
	fmt.Fprintln(w, "Images may also be given as an http(s) URL.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Write the document here (default: stdout)")
	fmt.Fprintln(w, "      --into <path>         Append to this existing document")
	fmt.Fprintln(w, "      --url <url>           Image URL to reference (default: the file path)")
	fmt.Fprintln(w, "      --excerpt             Print the first-page excerpt only")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit inspect <file.pdf> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate a PDF and report its page count and metadata.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API and the read-only share view.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exporters (0 = auto)")
	fmt.Fprintln(w, "      --base-url <url>      Base URL of generated share links")
	fmt.Fprintln(w, "      --max-body <n>        Request body limit in bytes")
	fmt.Fprintln(w, "      --gate                Refuse exports with major issues")
	fmt.Fprintln(w)
	printPrintUsage(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser, environment and output directories.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --show-config         Print the effective configuration as YAML")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "paginate":
		printPaginateUsage(env.Stdout)
	case "preflight":
		printPreflightUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "share":
		printShareUsage(env.Stdout)
	case "open":
		printOpenUsage(env.Stdout)
	case "import":
		printImportUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: draftkit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: draftkit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
