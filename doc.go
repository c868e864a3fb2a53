// Package draftkit turns plain-text drafts into paged previews, preflight
// reports, PDFs and shareable links.
//
// # Quick Start
//
//	exp, err := draftkit.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	res, err := exp.Export(ctx, draftkit.ExportInput{
//	    Content: "# Notes\n\nFirst draft.",
//	    Options: &draftkit.ExportOptions{Title: "Notes", Quality: 90},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(res.FileName, res.PDF, 0o644)
//
// # Export Paths
//
// Documents with a Markdown image line go through the print path: a
// printable HTML page is loaded in headless Chrome (go-rod), image loads are
// awaited for at most 1.8 seconds, and the page is printed. Other documents
// go through a built-in single-font PDF serializer. Each path is the other's
// fallback; ExportResult.Mode reports which one produced the file.
//
// # Pagination
//
// Paginate splits text into page-sized chunks by character budget. Authors
// force a break with PageBreakToken. Budgets come from the layout format:
//
//	pages := draftkit.Paginate(text, draftkit.PageBudget(draftkit.LayoutBook))
//
// # Preflight
//
// Analyze reports parse, overflow, font, image and size issues with an
// overall severity. WithPreflightGate makes Export refuse major issues
// unless ExportInput.AcknowledgeIssues is set.
//
// # Sharing
//
// EncodeShareURL packs title, content and options into a URL with the
// "view=pdf&share=<base64url>" query; DecodeShareURL reverses it. Links
// longer than 7000 characters are refused.
//
// # Parallel Processing
//
// ExporterPool manages several exporters, one browser each:
//
//	pool := draftkit.NewExporterPool(4)
//	defer pool.Close()
//
//	exp := pool.Acquire()
//	defer pool.Release(exp)
//
// # Browser Requirements
//
// The print path needs Chrome/Chromium. go-rod downloads a managed Chromium
// on first use (~/.cache/rod/browser/). In containers set ROD_NO_SANDBOX=1;
// ROD_BROWSER_BIN selects a custom binary.
package draftkit
