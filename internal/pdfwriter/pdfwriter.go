// Package pdfwriter serializes plain text into a minimal multi-page PDF.
//
// The writer emits the object graph by hand: a catalog, a page tree, one
// Helvetica font, and a page plus content stream per page, followed by an
// xref table whose offsets are measured on the bytes actually written. It
// does not embed images or fonts and knows nothing about Markdown.
package pdfwriter

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Page geometry and text metrics, in points.
const (
	PageWidth       = 595
	PageHeight      = 842
	MarginX         = 52
	MarginTop       = 64
	MarginBottom    = 60
	LineHeight      = 15
	FontSize        = 11
	MaxCharsPerLine = 92
	MaxLinesPerPage = (PageHeight - MarginTop - MarginBottom) / LineHeight
)

// Placeholder is written when content is blank.
const Placeholder = "No content available."

// Producer is recorded in the document information dictionary.
const Producer = "go-draftkit"

// ErrBuild is returned when the document cannot be assembled.
var ErrBuild = errors.New("pdf build failed")

// Options toggles the optional parts of the output.
type Options struct {
	// Compress encodes content streams with FlateDecode.
	Compress bool
	// Metadata adds an information dictionary with title and producer.
	Metadata bool
	// Watermark draws a light "Draft" mark on every page.
	Watermark bool
	// Now is used for /CreationDate. Zero omits the date.
	Now time.Time
}

// Build renders content under title into PDF bytes.
func Build(content, title string, opts Options) ([]byte, error) {
	pages := Layout(content)

	w := &writer{}
	w.header()

	// Object ids: 1 catalog, 2 page tree, 3 font, then page/contents pairs.
	pageIDs := make([]int, len(pages))
	for i := range pages {
		pageIDs[i] = 4 + 2*i
	}
	infoID := 0
	if opts.Metadata {
		infoID = 4 + 2*len(pages)
	}

	w.object(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		kids[i] = strconv.Itoa(id) + " 0 R"
	}
	w.object(2, fmt.Sprintf("<< /Type /Pages /Kids [ %s ] /Count %d >>", strings.Join(kids, " "), len(pages)))
	w.object(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		pageID, contentsID := pageIDs[i], pageIDs[i]+1
		w.object(pageID, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			PageWidth, PageHeight, contentsID))

		stream := contentStream(title, lines, opts.Watermark)
		if err := w.stream(contentsID, stream, opts.Compress); err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrBuild, i+1, err)
		}
	}

	if infoID != 0 {
		w.object(infoID, infoDict(title, opts.Now))
	}

	w.trailer(infoID)
	return w.buf.Bytes(), nil
}

// Layout wraps content into lines and chunks them into pages.
// It always returns at least one page.
func Layout(content string) [][]string {
	source := content
	if strings.TrimSpace(source) == "" {
		source = Placeholder
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")

	var lines []string
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, WrapText(line, MaxCharsPerLine)...)
	}

	var pages [][]string
	for start := 0; start < len(lines); start += MaxLinesPerPage {
		end := min(start+MaxLinesPerPage, len(lines))
		pages = append(pages, lines[start:end])
	}
	if len(pages) == 0 {
		pages = append(pages, []string{Placeholder})
	}
	return pages
}

// WrapText packs the words of line into lines of at most maxChars runes.
// A line that already fits is returned verbatim. Words longer than maxChars
// are sliced into fixed-width pieces.
func WrapText(line string, maxChars int) []string {
	maxChars = max(maxChars, 1)
	if utf8.RuneCountInString(line) <= maxChars {
		return []string{line}
	}

	var (
		out        []string
		current    string
		currentLen int
	)
	for _, word := range strings.Fields(line) {
		wordLen := utf8.RuneCountInString(word)
		if current == "" && wordLen <= maxChars {
			current, currentLen = word, wordLen
			continue
		}
		if current != "" && currentLen+1+wordLen <= maxChars {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		if wordLen > maxChars {
			runes := []rune(word)
			for i := 0; i < len(runes); i += maxChars {
				out = append(out, string(runes[i:min(i+maxChars, len(runes))]))
			}
			current, currentLen = "", 0
			continue
		}
		current, currentLen = word, wordLen
	}
	if current != "" {
		out = append(out, current)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func contentStream(title string, lines []string, watermark bool) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "BT\n/F1 %d Tf\n%d TL\n%d %d Td\n", FontSize, LineHeight, MarginX, PageHeight-MarginTop)
	b.WriteString("(")
	b.Write(encodeText(title))
	b.WriteString(") Tj\nT*\nT*")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\nT*")
		}
		b.WriteString("\n(")
		b.Write(encodeText(line))
		b.WriteString(") Tj")
	}
	b.WriteString("\nET")

	if watermark {
		// 35 degree rotation, light gray fill.
		b.WriteString("\nq\n0.85 g\nBT\n/F1 48 Tf\n0.8192 0.5736 -0.5736 0.8192 190 330 Tm\n(Draft) Tj\nET\nQ")
	}
	return b.Bytes()
}

func infoDict(title string, now time.Time) string {
	var b strings.Builder
	b.WriteString("<< /Title (")
	b.Write(encodeText(title))
	b.WriteString(") /Producer (" + Producer + ")")
	if !now.IsZero() {
		b.WriteString(" /CreationDate (D:" + now.UTC().Format("20060102150405") + "Z)")
	}
	b.WriteString(" >>")
	return b.String()
}

// encodeText converts s to WinAnsi bytes and escapes PDF string delimiters.
// Runes outside the code page become '?'.
func encodeText(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		switch c {
		case '\\', '(', ')':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return out
}

type writer struct {
	buf     bytes.Buffer
	offsets []int
}

func (w *writer) header() {
	w.buf.WriteString("%PDF-1.4\n")
	w.buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})
}

// object writes an indirect object. Ids must be written in ascending order
// starting at 1.
func (w *writer) object(id int, body string) {
	w.offsets = append(w.offsets, w.buf.Len())
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", id, body)
}

func (w *writer) stream(id int, data []byte, compress bool) error {
	filter := ""
	if compress {
		compressed, err := deflate(data)
		if err != nil {
			return err
		}
		data = compressed
		filter = " /Filter /FlateDecode"
	}

	w.offsets = append(w.offsets, w.buf.Len())
	fmt.Fprintf(&w.buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", id, len(data), filter)
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\nendobj\n")
	return nil
}

func (w *writer) trailer(infoID int) {
	xrefOffset := w.buf.Len()
	size := len(w.offsets) + 1

	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}

	w.buf.WriteString("trailer\n")
	if infoID != 0 {
		fmt.Fprintf(&w.buf, "<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", size, infoID)
	} else {
		fmt.Fprintf(&w.buf, "<< /Size %d /Root 1 0 R >>\n", size)
	}
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing stream: %w", err)
	}
	return buf.Bytes(), nil
}
