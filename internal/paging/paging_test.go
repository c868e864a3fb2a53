package paging

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		budget  int
		want    []string
	}{
		{
			name:    "empty content yields one empty page",
			content: "",
			budget:  100,
			want:    []string{""},
		},
		{
			name:    "whitespace only yields one empty page",
			content: " \n\t\n ",
			budget:  100,
			want:    []string{""},
		},
		{
			name:    "only page break tokens",
			content: PageBreakToken + "\n\n" + PageBreakToken,
			budget:  100,
			want:    []string{""},
		},
		{
			name:    "blocks packed under budget",
			content: "one\n\ntwo\n\nthree",
			budget:  10,
			want:    []string{"one\n\ntwo", "three"},
		},
		{
			name:    "extra blank lines collapse into one separator",
			content: "one\n\n\n\ntwo",
			budget:  100,
			want:    []string{"one\n\ntwo"},
		},
		{
			name:    "manual break wins over budget",
			content: "first\n\n" + PageBreakToken + "\n\nsecond",
			budget:  1000,
			want:    []string{"first", "second"},
		},
		{
			name:    "manual break without surrounding whitespace",
			content: "first" + PageBreakToken + "second",
			budget:  1000,
			want:    []string{"first", "second"},
		},
		{
			name:    "oversized block cut at space",
			content: "alpha beta gamma delta epsilon",
			budget:  20,
			want:    []string{"alpha beta gamma", "delta epsilon"},
		},
		{
			name:    "oversized block cut at newline",
			content: "0123456789012\nabc def ghi jkl",
			budget:  20,
			want:    []string{"0123456789012", "abc def ghi jkl"},
		},
		{
			name:    "newline before half budget falls back to space",
			content: "abcd\nefghijklmnopqrs tuvwxyz",
			budget:  20,
			want:    []string{"abcd\nefghijklmnopqrs", "tuvwxyz"},
		},
		{
			name:    "single long word is hard cut",
			content: "abcdefghijklmnopqrstuvwxy",
			budget:  10,
			want:    []string{"abcdefghij", "klmnopqrst", "uvwxy"},
		},
		{
			name:    "CRLF line endings",
			content: "one\r\n\r\ntwo",
			budget:  100,
			want:    []string{"one\n\ntwo"},
		},
		{
			name:    "multibyte runes count as one",
			content: "ééééé\n\nààààà",
			budget:  12,
			want:    []string{"ééééé\n\nààààà"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Paginate(tt.content, tt.budget)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paginate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginate_NonPositiveBudget(t *testing.T) {
	t.Parallel()

	for _, budget := range []int{0, -5} {
		pages := Paginate("ab cd", budget)
		if len(pages) == 0 {
			t.Fatalf("Paginate(budget=%d) returned no pages", budget)
		}
		if got := strings.Join(pages, ""); stripSpace(got) != "abcd" {
			t.Errorf("Paginate(budget=%d) lost content: %q", budget, pages)
		}
	}
}

func TestPaginate_PreservesContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 300)
	inputs := []string{
		"Intro paragraph.\n\n" + long + "\n\nOutro.",
		strings.Repeat("x", 5000),
		"# Title\n\n" + strings.Repeat("line of text\n", 200),
		"a\n\n" + PageBreakToken + "\n\nb\n\n" + strings.Repeat("c", 250),
	}

	for _, budget := range []int{1, 7, 50, 300, 1800} {
		for i, in := range inputs {
			pages := Paginate(in, budget)
			if len(pages) == 0 {
				t.Fatalf("input %d budget %d: no pages", i, budget)
			}
			want := stripSpace(strings.ReplaceAll(in, PageBreakToken, ""))
			if got := stripSpace(strings.Join(pages, "")); got != want {
				t.Errorf("input %d budget %d: content changed after pagination", i, budget)
			}
		}
	}
}

func TestPaginate_PagesRespectBudgetUnlessSingleBlock(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("Short paragraph here.\n\n", 40)
	budget := 100
	for i, page := range Paginate(content, budget) {
		if n := len([]rune(page)); n > budget {
			t.Errorf("page %d has %d runes, budget %d", i, n, budget)
		}
	}
}

func TestPaginate_ImageLineNotWrapped(t *testing.T) {
	t.Parallel()

	img := "![scan](https://example.com/" + strings.Repeat("a", 200) + ".png)"
	pages := Paginate(img, 1800)
	if diff := cmp.Diff([]string{img}, pages); diff != "" {
		t.Errorf("image line altered (-want +got):\n%s", diff)
	}
}

func TestWrapLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short line unchanged", "hello", 10, "hello"},
		{"exact width unchanged", "0123456789", 10, "0123456789"},
		{"long line sliced", "0123456789abcdefghijXYZ", 10, "0123456789\nabcdefghij\nXYZ"},
		{"image line passes through", "![a](aaaaaaaaaaaaaaaa.png)", 10, "![a](aaaaaaaaaaaaaaaa.png)"},
		{"empty image body is text", "![a](          )", 10, "![a](     \n     )"},
		{"each line wrapped alone", "abcdef\nxy", 3, "abc\ndef\nxy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WrapLines(tt.in, tt.width); got != tt.want {
				t.Errorf("WrapLines(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestSplitBlocks(t *testing.T) {
	t.Parallel()

	got := SplitBlocks("a\nb\n\n\nc\n\n   \n\nd")
	want := []string{"a\nb", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	content := "  one  \n" + PageBreakToken + "\n\n two \n" + PageBreakToken + PageBreakToken
	want := []string{"one", "two"}
	if diff := cmp.Diff(want, Segments(content)); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
