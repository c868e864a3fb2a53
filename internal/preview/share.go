package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-draftkit/internal/assets"
	"github.com/alnah/go-draftkit/internal/mdimage"
)

// View is a shared document split into pages.
type View struct {
	Title     string
	CreatedAt time.Time
	Watermark bool
	Pages     []string
}

// Page is one rendered sheet of a View. A page holding nothing but one
// image reference is shown as a full-sheet figure instead of HTML.
type Page struct {
	Number int
	HTML   template.HTML
	Image  *mdimage.Image
}

type viewData struct {
	Title     string
	CSS       template.CSS
	CreatedAt time.Time
	Watermark bool
	Pages     []Page
}

// Renderer turns page Markdown into sanitized HTML sheets.
type Renderer struct {
	conv   *Converter
	policy *bluemonday.Policy
	tmpl   *template.Template
	css    template.CSS
}

// NewRenderer loads the share template and style through resolver and
// appends the stylesheet for highlighted code.
func NewRenderer(resolver *assets.AssetResolver) (*Renderer, error) {
	if resolver == nil {
		resolver = assets.Default()
	}
	tmpl, css, err := resolver.Page(assets.ShareName, nil)
	if err != nil {
		return nil, fmt.Errorf("loading share assets: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(string(css))
	buf.WriteString("\n")
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return nil, fmt.Errorf("writing highlight css: %w", err)
	}

	return &Renderer{
		conv:   NewConverter(),
		policy: newPolicy(),
		tmpl:   tmpl,
		css:    template.CSS(buf.String()), // #nosec G203 -- trusted asset content
	}, nil
}

// RenderPage converts one page of Markdown and sanitizes the result.
func (r *Renderer) RenderPage(ctx context.Context, markdown string) (template.HTML, error) {
	out, err := r.conv.ToHTML(ctx, markdown)
	if err != nil {
		return "", err
	}
	return template.HTML(r.policy.Sanitize(out)), nil // #nosec G203 -- sanitized above
}

// Render writes the complete share view for v to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, v View) error {
	data := viewData{
		Title:     v.Title,
		CSS:       r.css,
		CreatedAt: v.CreatedAt,
		Watermark: v.Watermark,
		Pages:     make([]Page, 0, len(v.Pages)),
	}
	for i, md := range v.Pages {
		if img, ok := mdimage.SingleImage(md); ok {
			if img.Alt == "" {
				img.Alt = "image"
			}
			data.Pages = append(data.Pages, Page{Number: i + 1, Image: &img})
			continue
		}
		body, err := r.RenderPage(ctx, md)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		data.Pages = append(data.Pages, Page{Number: i + 1, HTML: body})
	}

	// Buffer so a template failure never leaves a half-written response.
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing share template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
