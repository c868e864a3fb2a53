package draftkit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaginate_Basics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		budget  int
		want    []string
	}{
		{"blank", "  \n ", 1800, []string{""}},
		{"short", "Hello", 1800, []string{"Hello"}},
		{"forced break", "one\n" + PageBreakToken + "\ntwo", 1800, []string{"one", "two"}},
		{"blocks packed", "aaaa\n\nbbbb\n\ncccc", 10, []string{"aaaa\n\nbbbb", "cccc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Paginate(tt.content, tt.budget)); diff != "" {
				t.Errorf("Paginate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginateWithWrap(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("x", 50)
	pages := PaginateWithWrap(content, 1800, 20)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if got := strings.Count(pages[0], "\n"); got != 2 {
		t.Errorf("wrapped into %d breaks, want 2: %q", got, pages[0])
	}
	if got := Paginate(content, 1800); got[0] != content {
		t.Errorf("default width wrapped a short line: %q", got[0])
	}
}

func TestPaginateFormat_CatalogueHoldsLess(t *testing.T) {
	t.Parallel()

	// 1600 characters in 16 blocks of 99 plus separators.
	block := strings.Repeat("w", 99)
	content := strings.TrimSuffix(strings.Repeat(block+"\n\n", 16), "\n\n")

	if got := len(PaginateFormat(content, LayoutBook)); got != 1 {
		t.Errorf("book pages = %d, want 1", got)
	}
	if got := len(PaginateFormat(content, LayoutCatalogue)); got != 2 {
		t.Errorf("catalogue pages = %d, want 2", got)
	}
}

func TestPreviewPages(t *testing.T) {
	t.Parallel()

	three := "a\n" + PageBreakToken + "\nb\n" + PageBreakToken + "\nc"

	tests := []struct {
		name    string
		content string
		target  int
		want    []string
	}{
		{"pads to minimum", "only", 1, []string{"only", ""}},
		{"truncates", three, 2, []string{"a", "b"}},
		{"pads to target", three, 5, []string{"a", "b", "c", "", ""}},
		{"blank document", "", 2, []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, PreviewPages(tt.content, LayoutZine, tt.target)); diff != "" {
				t.Errorf("PreviewPages() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := len(PreviewPages(three, LayoutZine, 100)); got != MaxPreviewPages {
		t.Errorf("PreviewPages(target 100) = %d pages, want %d", got, MaxPreviewPages)
	}
}

func TestInsertImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty document",
			content: "  ",
			want:    "![scan.png](blob:1)\n\n" + PageBreakToken,
		},
		{
			name:    "existing text",
			content: "Intro text\n\n",
			want:    "Intro text\n\n" + PageBreakToken + "\n\n![scan.png](blob:1)\n\n" + PageBreakToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InsertImage(tt.content, "scan.png", "blob:1"); got != tt.want {
				t.Errorf("InsertImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertImage_OwnPage(t *testing.T) {
	t.Parallel()

	doc := InsertImage("Intro", "scan.png", "scan.png")
	want := []string{"Intro", "![scan.png](scan.png)"}
	if diff := cmp.Diff(want, Paginate(doc, DefaultBudget)); diff != "" {
		t.Errorf("inserted image not on its own page (-want +got):\n%s", diff)
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	if got := Excerpt("  "); got != "" {
		t.Errorf("Excerpt(blank) = %q", got)
	}
	long := strings.Repeat("word ", 600)
	got := Excerpt(long)
	if n := len([]rune(got)); n == 0 || n > ThumbnailBudget {
		t.Errorf("Excerpt() length = %d, want 1..%d", n, ThumbnailBudget)
	}
	if !strings.HasPrefix(got, "word word") {
		t.Errorf("Excerpt() does not start the document: %q", got[:min(len(got), 20)])
	}
}
