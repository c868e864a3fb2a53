// Package paging splits a flat text buffer into page-sized chunks.
//
// Pages are built from blocks (blank-line separated runs of text) packed
// greedily under an approximate character budget. Manual page-break tokens
// always start a new page. All lengths are counted in runes.
package paging

import (
	"regexp"
	"strings"

	"github.com/alnah/go-draftkit/internal/mdimage"
)

// PageBreakToken is the in-band marker that forces a page boundary.
const PageBreakToken = "<!--DK_PAGE_BREAK-->"

// DefaultWrapWidth is the soft line limit applied before blocks are packed.
const DefaultWrapWidth = 120

// blockSeparator joins blocks that share a page.
const blockSeparator = "\n\n"

var (
	pageBreakPattern = regexp.MustCompile(`\s*` + regexp.QuoteMeta(PageBreakToken) + `\s*`)
	blankRunPattern  = regexp.MustCompile(`\n{2,}`)
	lineEndings      = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Paginate splits content into pages of roughly budget runes using the
// default wrap width. It always returns at least one page.
func Paginate(content string, budget int) []string {
	return PaginateWithWrap(content, budget, DefaultWrapWidth)
}

// PaginateWithWrap is Paginate with an explicit soft wrap width.
// A budget or width below 1 is treated as 1.
func PaginateWithWrap(content string, budget, wrapWidth int) []string {
	budget = max(budget, 1)
	wrapWidth = max(wrapWidth, 1)

	var pages []string
	for _, segment := range Segments(content) {
		pages = append(pages, paginateSegment(segment, budget, wrapWidth)...)
	}
	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}

// Segments splits content on page-break tokens. Segments are trimmed and
// empty ones are dropped, so a document holding only tokens has none.
func Segments(content string) []string {
	source := strings.TrimSpace(lineEndings.Replace(content))
	if source == "" {
		return nil
	}

	var segments []string
	for _, part := range pageBreakPattern.Split(source, -1) {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// WrapLines hard-wraps every non-image line longer than width runes.
// Image lines are left intact so their URLs survive.
func WrapLines(segment string, width int) string {
	width = max(width, 1)
	lines := strings.Split(segment, "\n")
	for i, line := range lines {
		if mdimage.IsImageLine(line) {
			continue
		}
		runes := []rune(line)
		if len(runes) <= width {
			continue
		}
		parts := make([]string, 0, len(runes)/width+1)
		for len(runes) > width {
			parts = append(parts, string(runes[:width]))
			runes = runes[width:]
		}
		if len(runes) > 0 {
			parts = append(parts, string(runes))
		}
		lines[i] = strings.Join(parts, "\n")
	}
	return strings.Join(lines, "\n")
}

// SplitBlocks splits text on runs of two or more newlines and drops blocks
// that hold only whitespace.
func SplitBlocks(text string) []string {
	var blocks []string
	for _, part := range blankRunPattern.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

func paginateSegment(segment string, budget, wrapWidth int) []string {
	var (
		pages   []string
		current string
		curLen  int
	)

	for _, block := range SplitBlocks(WrapLines(segment, wrapWidth)) {
		parts := []string{block}
		if runeLen(block) > budget {
			parts = splitOversized(block, budget)
		}

		for _, part := range parts {
			partLen := runeLen(part)
			if current == "" {
				current, curLen = part, partLen
				continue
			}
			candidateLen := curLen + len(blockSeparator) + partLen
			if candidateLen > budget {
				pages = append(pages, current)
				current, curLen = part, partLen
				continue
			}
			current += blockSeparator + part
			curLen = candidateLen
		}
	}

	if current != "" {
		pages = append(pages, current)
	}
	return pages
}

// splitOversized cuts a block longer than budget into pieces. Each cut
// prefers the last newline at or before budget, then the last space, as long
// as that point is at least half the budget in; otherwise it cuts hard.
func splitOversized(block string, budget int) []string {
	var pieces []string
	rest := []rune(strings.TrimSpace(block))
	half := float64(budget) * 0.5

	for len(rest) > budget {
		cut := lastIndexAtOrBefore(rest, '\n', budget)
		if float64(cut) < half {
			cut = lastIndexAtOrBefore(rest, ' ', budget)
		}
		if float64(cut) < half {
			cut = budget
		}
		pieces = append(pieces, strings.TrimSpace(string(rest[:cut])))
		rest = []rune(strings.TrimSpace(string(rest[cut:])))
	}
	if len(rest) > 0 {
		pieces = append(pieces, string(rest))
	}
	if len(pieces) == 0 {
		return []string{block}
	}
	return pieces
}

// lastIndexAtOrBefore returns the last index of r in s that is <= from, or -1.
func lastIndexAtOrBefore(s []rune, r rune, from int) int {
	from = min(from, len(s)-1)
	for i := from; i >= 0; i-- {
		if s[i] == r {
			return i
		}
	}
	return -1
}

func runeLen(s string) int {
	return len([]rune(s))
}
