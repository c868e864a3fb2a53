package preflight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\n\t\n"} {
		got := Analyze(in)
		want := Result{Severity: SeverityNone, Issues: []Issue{}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Analyze(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		wantKinds    []Kind
		wantSeverity Severity
	}{
		{
			name:         "clean document",
			content:      "# Title\n\nA paragraph with `code` and [a link](https://example.com).",
			wantKinds:    nil,
			wantSeverity: SeverityNone,
		},
		{
			name:         "single backtick",
			content:      "`unbalanced",
			wantKinds:    []Kind{KindParse},
			wantSeverity: SeverityMinor,
		},
		{
			name:         "matched backticks",
			content:      "`balanced`",
			wantKinds:    nil,
			wantSeverity: SeverityNone,
		},
		{
			name:         "unmatched bracket",
			content:      "see [note",
			wantKinds:    []Kind{KindParse},
			wantSeverity: SeverityMinor,
		},
		{
			name:         "unmatched paren",
			content:      "1) first item",
			wantKinds:    []Kind{KindParse},
			wantSeverity: SeverityMinor,
		},
		{
			name:         "overlong line",
			content:      strings.Repeat("a", 400),
			wantKinds:    []Kind{KindOverflow},
			wantSeverity: SeverityMajor,
		},
		{
			name:         "line at the limit",
			content:      strings.Repeat("a", MaxLineLength),
			wantKinds:    nil,
			wantSeverity: SeverityNone,
		},
		{
			name:         "supported font",
			content:      "[font:  IBM Plex Sans ]",
			wantKinds:    nil,
			wantSeverity: SeverityNone,
		},
		{
			name:         "unknown font",
			content:      "[FONT: Comic Sans]",
			wantKinds:    []Kind{KindMissingFont},
			wantSeverity: SeverityMinor,
		},
		{
			name:         "second font tag unknown",
			content:      "[font: Inter]\n\n[font: Papyrus]",
			wantKinds:    []Kind{KindMissingFont},
			wantSeverity: SeverityMinor,
		},
		{
			name:         "image with missing source",
			content:      "![chart](assets/missing-chart.png)",
			wantKinds:    []Kind{KindImageFailure},
			wantSeverity: SeverityMajor,
		},
		{
			name:         "image with 404 source",
			content:      "![chart](https://example.com/404.png)",
			wantKinds:    []Kind{KindImageFailure},
			wantSeverity: SeverityMajor,
		},
		{
			name:         "image with empty source",
			content:      "text ![chart]( ) text",
			wantKinds:    []Kind{KindImageFailure},
			wantSeverity: SeverityMajor,
		},
		{
			name:         "working image",
			content:      "![chart](chart.png)",
			wantKinds:    nil,
			wantSeverity: SeverityNone,
		},
		{
			name:         "several checks at once",
			content:      "`x\n" + strings.Repeat("b", 361),
			wantKinds:    []Kind{KindParse, KindOverflow},
			wantSeverity: SeverityMajor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Analyze(tt.content)
			var kinds []Kind
			for _, issue := range got.Issues {
				kinds = append(kinds, issue.Kind)
			}
			if diff := cmp.Diff(tt.wantKinds, kinds); diff != "" {
				t.Errorf("issue kinds mismatch (-want +got):\n%s", diff)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.wantSeverity)
			}
			if got.Blocking() != (tt.wantSeverity == SeverityMajor) {
				t.Errorf("Blocking() = %v for severity %q", got.Blocking(), got.Severity)
			}
		})
	}
}

func TestAnalyze_LargeDocument(t *testing.T) {
	t.Parallel()

	t.Run("by characters", func(t *testing.T) {
		t.Parallel()
		content := strings.Repeat(strings.Repeat("x", 99)+"\n", 210)
		got := Analyze(content)
		if !got.LargeDocument || !got.Has(KindLargeDocument) {
			t.Errorf("expected large-document, got %+v", got.Issues)
		}
		if got.Severity != SeverityMinor {
			t.Errorf("Severity = %q, want minor", got.Severity)
		}
	})

	t.Run("by lines", func(t *testing.T) {
		t.Parallel()
		got := Analyze(strings.Repeat("a\n", LargeDocumentLines))
		if !got.LargeDocument {
			t.Error("901 lines should count as large")
		}
	})

	t.Run("just under both limits", func(t *testing.T) {
		t.Parallel()
		got := Analyze(strings.Repeat("a\n", LargeDocumentLines-1))
		if got.LargeDocument {
			t.Error("900 lines should not count as large")
		}
	})
}

func TestAnalyze_IssueText(t *testing.T) {
	t.Parallel()

	got := Analyze("![x](missing.png)")
	want := []Issue{{
		Kind:   KindImageFailure,
		Level:  LevelMajor,
		Title:  "Image couldn’t be displayed",
		Detail: "Check the file path or reinsert the image before exporting.",
	}}
	if diff := cmp.Diff(want, got.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestFontSupported(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"Inter":             true,
		" times new roman ": true,
		"GEORGIA":           true,
		"Helvetica":         false,
		"":                  false,
	} {
		if got := FontSupported(name); got != want {
			t.Errorf("FontSupported(%q) = %v, want %v", name, got, want)
		}
	}
}
