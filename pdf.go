package draftkit

import (
	"fmt"
	"time"

	"github.com/alnah/go-draftkit/internal/pdfwriter"
)

// BuildPDF renders content under title with the built-in serializer and
// default options: uncompressed, no metadata, no watermark.
func BuildPDF(content, title string) ([]byte, error) {
	return buildPDF(content, &ExportOptions{Title: title}, time.Time{})
}

// buildPDF maps export options onto serializer options.
func buildPDF(content string, opts *ExportOptions, now time.Time) ([]byte, error) {
	data, err := pdfwriter.Build(content, opts.ResolvedTitle(), pdfwriter.Options{
		Compress:  opts.Compression,
		Metadata:  opts.IncludeMetadata,
		Watermark: opts.Watermark,
		Now:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFBuild, err)
	}
	return data, nil
}
