package draftkit

import (
	"strings"

	"github.com/alnah/go-draftkit/internal/paging"
)

// DefaultWrapWidth is the soft line width Paginate wraps at.
const DefaultWrapWidth = paging.DefaultWrapWidth

// PageBreakToken forces a page break wherever it appears in a document.
const PageBreakToken = paging.PageBreakToken

// Preview page count bounds.
const (
	MinPreviewPages = 2
	MaxPreviewPages = 24
)

// Paginate splits content into pages of roughly budget characters.
// It never returns an empty slice: blank content yields one empty page.
// Budgets below 1 are treated as 1.
func Paginate(content string, budget int) []string {
	return paging.Paginate(content, budget)
}

// PaginateWithWrap is Paginate with an explicit soft wrap width applied to
// long lines before packing. A width below 1 is treated as 1.
func PaginateWithWrap(content string, budget, wrapWidth int) []string {
	return paging.PaginateWithWrap(content, budget, wrapWidth)
}

// PaginateFormat paginates with the budget of layout format f.
func PaginateFormat(content string, f LayoutFormat) []string {
	return paging.Paginate(content, PageBudget(f))
}

// PreviewPages returns exactly target pages for an on-screen preview of
// content in format f: extra pages are dropped and missing ones are blank.
// target is clamped to [MinPreviewPages, MaxPreviewPages].
func PreviewPages(content string, f LayoutFormat, target int) []string {
	target = max(MinPreviewPages, min(target, MaxPreviewPages))

	pages := PaginateFormat(content, f)
	if len(pages) >= target {
		return pages[:target]
	}
	out := make([]string, target)
	copy(out, pages)
	return out
}

// Excerpt returns the trimmed first page at ThumbnailBudget, used for
// document list previews.
func Excerpt(content string) string {
	return strings.TrimSpace(paging.Paginate(content, ThumbnailBudget)[0])
}

// InsertImage appends an image reference to content on a page of its own.
// name is used as the alt text.
func InsertImage(content, name, url string) string {
	var b strings.Builder
	if prev := strings.TrimSpace(content); prev != "" {
		b.WriteString(prev)
		b.WriteString("\n\n" + PageBreakToken + "\n\n")
	}
	b.WriteString("![" + name + "](" + url + ")")
	b.WriteString("\n\n" + PageBreakToken)
	return b.String()
}
