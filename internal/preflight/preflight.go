// Package preflight scans document text for layout risks before export.
package preflight

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-draftkit/internal/mdimage"
)

// Thresholds for the size and overflow checks.
const (
	MaxLineLength      = 360
	LargeDocumentChars = 20000
	LargeDocumentLines = 900
)

// Severity is the overall outcome of an analysis.
type Severity string

const (
	SeverityNone  Severity = "none"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Level is the weight of a single issue.
type Level string

const (
	LevelMinor Level = "minor"
	LevelMajor Level = "major"
)

// Kind identifies which check produced an issue.
type Kind string

const (
	KindParse         Kind = "parse"
	KindOverflow      Kind = "overflow"
	KindMissingFont   Kind = "missing-font"
	KindImageFailure  Kind = "image-failure"
	KindLargeDocument Kind = "large-document"
)

// Issue is one finding reported to the user.
type Issue struct {
	Kind   Kind   `json:"kind"`
	Level  Level  `json:"level"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Result is the outcome of Analyze.
type Result struct {
	Severity      Severity `json:"severity"`
	Issues        []Issue  `json:"issues"`
	LargeDocument bool     `json:"largeDocument"`
}

// Blocking reports whether export must wait for the user to acknowledge.
func (r Result) Blocking() bool {
	return r.Severity == SeverityMajor
}

// Has reports whether an issue of the given kind was found.
func (r Result) Has(kind Kind) bool {
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

var supportedFonts = map[string]struct{}{
	"inter":           {},
	"ibm plex sans":   {},
	"source sans pro": {},
	"georgia":         {},
	"times new roman": {},
}

var fontTag = regexp.MustCompile(`(?i)\[font:\s*([^\]]+)\]`)

var catalog = map[Kind]Issue{
	KindParse: {
		Kind:   KindParse,
		Level:  LevelMinor,
		Title:  "Some content couldn’t be formatted",
		Detail: "Check for unmatched symbols or unsupported formatting in the highlighted section.",
	},
	KindOverflow: {
		Kind:   KindOverflow,
		Level:  LevelMajor,
		Title:  "Section exceeds page bounds",
		Detail: "Try adjusting spacing, reducing font size, or allowing this section to break across pages.",
	},
	KindMissingFont: {
		Kind:   KindMissingFont,
		Level:  LevelMinor,
		Title:  "Font unavailable",
		Detail: "The selected font couldn’t be loaded. A fallback font is being used for preview and export.",
	},
	KindImageFailure: {
		Kind:   KindImageFailure,
		Level:  LevelMajor,
		Title:  "Image couldn’t be displayed",
		Detail: "Check the file path or reinsert the image before exporting.",
	},
	KindLargeDocument: {
		Kind:   KindLargeDocument,
		Level:  LevelMinor,
		Title:  "Large document detected",
		Detail: "Rendering may take a moment. Consider enabling compression before export.",
	},
}

// Analyze runs every check against content. Checks are independent and a
// document can trigger several of them. Blank content has no issues.
func Analyze(content string) Result {
	result := Result{Severity: SeverityNone, Issues: []Issue{}}
	if strings.TrimSpace(content) == "" {
		return result
	}

	lines := strings.Split(content, "\n")

	if unbalanced(content) {
		result.Issues = append(result.Issues, catalog[KindParse])
	}
	if longestLine(lines) > MaxLineLength {
		result.Issues = append(result.Issues, catalog[KindOverflow])
	}
	if hasUnknownFont(content) {
		result.Issues = append(result.Issues, catalog[KindMissingFont])
	}
	if hasBrokenImage(content) {
		result.Issues = append(result.Issues, catalog[KindImageFailure])
	}
	if utf8.RuneCountInString(content) > LargeDocumentChars || len(lines) > LargeDocumentLines {
		result.LargeDocument = true
		result.Issues = append(result.Issues, catalog[KindLargeDocument])
	}

	result.Severity = severityOf(result.Issues)
	return result
}

// FontSupported reports whether name is on the font allowlist.
func FontSupported(name string) bool {
	_, ok := supportedFonts[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func severityOf(issues []Issue) Severity {
	if len(issues) == 0 {
		return SeverityNone
	}
	for _, issue := range issues {
		if issue.Level == LevelMajor {
			return SeverityMajor
		}
	}
	return SeverityMinor
}

// unbalanced is a counting heuristic, not a parser.
func unbalanced(s string) bool {
	return strings.Count(s, "`")%2 != 0 ||
		strings.Count(s, "[") != strings.Count(s, "]") ||
		strings.Count(s, "(") != strings.Count(s, ")")
}

func longestLine(lines []string) int {
	longest := 0
	for _, line := range lines {
		longest = max(longest, utf8.RuneCountInString(line))
	}
	return longest
}

// hasUnknownFont checks every font tag, not only the first.
func hasUnknownFont(s string) bool {
	for _, m := range fontTag.FindAllStringSubmatch(s, -1) {
		if !FontSupported(m[1]) {
			return true
		}
	}
	return false
}

func hasBrokenImage(s string) bool {
	for _, ref := range mdimage.FindAll(s) {
		src := strings.ToLower(strings.TrimSpace(ref.Src))
		if src == "" || strings.Contains(src, "missing") || strings.Contains(src, "404") {
			return true
		}
	}
	return false
}
