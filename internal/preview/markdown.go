// Package preview renders paginated Markdown as sanitized HTML pages for the
// share view.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion is returned when Markdown cannot be converted.
var ErrConversion = errors.New("markdown conversion failed")

// Highlight placeholders use Private Use Area runes so they pass through
// goldmark untouched and become <mark> afterwards.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

// HighlightStyle is the chroma style used for fenced code blocks.
const HighlightStyle = "github"

// Converter converts Markdown to an HTML fragment.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM, footnotes and class-based
// syntax highlighting. Raw HTML in the source is not rendered.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &Converter{md: md}
}

// ToHTML converts content to an HTML fragment. Goldmark has no context
// support, so conversion runs in a goroutine and ctx bounds the wait.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(preprocess(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: convertMarks(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return highlightPattern.ReplaceAllString(content, markStart+"$1"+markEnd)
}

func convertMarks(s string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(s)
}
