package draftkit

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-draftkit/internal/sharelink"
)

// SharePayload is the document carried by a share link.
type SharePayload = sharelink.Payload

// ShareOptions are the export options carried by a share link.
type ShareOptions = sharelink.Options

// MaxShareURLLength is the longest share link EncodeShareURL produces.
const MaxShareURLLength = sharelink.MaxURLLength

// NewSharePayload builds a payload from a document and its export options.
// The payload title is the resolved export title.
func NewSharePayload(content string, opts *ExportOptions, now time.Time) SharePayload {
	if opts == nil {
		opts = DefaultExportOptions()
	}
	return SharePayload{
		Title:   opts.ResolvedTitle(),
		Content: content,
		Options: ShareOptions{
			Title:           opts.Title,
			Quality:         opts.Quality,
			Compression:     opts.Compression,
			IncludeMetadata: opts.IncludeMetadata,
			Watermark:       opts.Watermark,
		},
		CreatedAt: now.UTC(),
	}
}

// ShareExportOptions returns export options for re-exporting a shared
// document. Out-of-range quality values from foreign links are clamped.
func ShareExportOptions(p SharePayload) *ExportOptions {
	title := p.Options.Title
	if title == "" {
		title = p.Title
	}
	return &ExportOptions{
		Title:           title,
		Quality:         max(MinQuality, min(p.Options.Quality, MaxQuality)),
		Compression:     p.Options.Compression,
		IncludeMetadata: p.Options.IncludeMetadata,
		Watermark:       p.Options.Watermark,
	}
}

// EncodeShareURL sets the share query on baseURL, keeping its other
// parameters. Links over MaxShareURLLength return ErrShareLinkTooLong.
func EncodeShareURL(baseURL string, p SharePayload) (string, error) {
	link, err := sharelink.Encode(baseURL, p)
	switch {
	case errors.Is(err, sharelink.ErrTooLong):
		return "", fmt.Errorf("%w: %v", ErrShareLinkTooLong, err)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrShareEncode, err)
	}
	return link, nil
}

// DecodeShareURL extracts the payload from a share link. It reports false
// for anything that is not a well-formed share link.
func DecodeShareURL(rawURL string) (SharePayload, bool) {
	return sharelink.Decode(rawURL)
}
