// Package printhtml renders document text as a self-contained printable
// HTML page.
//
// The body transform is line oriented and deliberately small: image lines
// become figures, ATX headings become heading elements, blank lines become
// spacers and everything else becomes a paragraph.
package printhtml

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/alnah/go-draftkit/internal/assets"
	"github.com/alnah/go-draftkit/internal/mdimage"
)

const (
	// DefaultTitle is used when the title is blank.
	DefaultTitle = "Draft Export"
	// MaxTitleLength caps the resolved title, in runes.
	MaxTitleLength = 120
	// Placeholder replaces blank content.
	Placeholder = "No content available."
)

var headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Options controls the page chrome around the body.
type Options struct {
	Title       string
	Quality     int
	Compression bool
	Metadata    bool
	Watermark   bool
	// BaseDir resolves relative image sources when set.
	BaseDir string
}

// Renderer renders pages from a parsed template and stylesheet.
type Renderer struct {
	tmpl *template.Template
	css  template.CSS
}

type pageData struct {
	Title       string
	CSS         template.CSS
	Metadata    bool
	Quality     string
	Compression string
	Watermark   bool
	Body        template.HTML
}

// NewRenderer loads the print template and style through resolver.
func NewRenderer(resolver *assets.AssetResolver) (*Renderer, error) {
	if resolver == nil {
		resolver = assets.Default()
	}
	tmpl, css, err := resolver.Page(assets.PrintName, nil)
	if err != nil {
		return nil, fmt.Errorf("loading print assets: %w", err)
	}
	return &Renderer{tmpl: tmpl, css: css}, nil
}

// Render renders content with the embedded assets.
func Render(content string, opts Options) (string, error) {
	r, err := NewRenderer(nil)
	if err != nil {
		return "", err
	}
	return r.Render(content, opts)
}

// Render renders content into a complete HTML document.
func (r *Renderer) Render(content string, opts Options) (string, error) {
	source := strings.TrimSpace(content)
	if source == "" {
		source = Placeholder
	}

	compression := "disabled"
	if opts.Compression {
		compression = "enabled"
	}

	data := pageData{
		Title:       ResolveTitle(opts.Title),
		CSS:         r.css,
		Metadata:    opts.Metadata,
		Quality:     QualityHint(opts.Quality),
		Compression: compression,
		Watermark:   opts.Watermark,
		Body:        template.HTML(Body(source)), // #nosec G203 -- every fragment is escaped in Body
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing print template: %w", err)
	}
	out, err := ResolveImagePaths(buf.String(), opts.BaseDir)
	if err != nil {
		return "", fmt.Errorf("resolving image paths: %w", err)
	}
	return out, nil
}

// Body converts source line by line into escaped HTML blocks.
func Body(source string) string {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	blocks := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blocks = append(blocks, `<div class="spacer"></div>`)
			continue
		}

		if img, ok := mdimage.Parse(trimmed); ok {
			blocks = append(blocks, figure(img))
			continue
		}

		if m := headingLine.FindStringSubmatch(trimmed); m != nil {
			depth := len(m[1])
			blocks = append(blocks, fmt.Sprintf("<h%d>%s</h%d>", depth, html.EscapeString(m[2]), depth))
			continue
		}

		blocks = append(blocks, "<p>"+html.EscapeString(trimmed)+"</p>")
	}

	return strings.Join(blocks, "\n")
}

func figure(img mdimage.Image) string {
	alt := img.Alt
	if alt == "" {
		alt = "image"
	}

	var b strings.Builder
	b.WriteString(`<figure class="image-block"><img src="`)
	b.WriteString(html.EscapeString(img.Src))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(alt))
	b.WriteString(`"`)
	if img.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(html.EscapeString(img.Title))
		b.WriteString(`"`)
	}
	b.WriteString(` /></figure>`)
	return b.String()
}

// ResolveTitle trims title, substitutes DefaultTitle when blank and caps the
// result at MaxTitleLength runes.
func ResolveTitle(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return DefaultTitle
	}
	if runes := []rune(t); len(runes) > MaxTitleLength {
		return string(runes[:MaxTitleLength])
	}
	return t
}

// QualityHint buckets a 0..100 quality value.
func QualityHint(quality int) string {
	switch {
	case quality >= 85:
		return "high"
	case quality >= 60:
		return "medium"
	default:
		return "draft"
	}
}
