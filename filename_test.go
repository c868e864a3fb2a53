package draftkit

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"blank", "   ", "draft-export.pdf"},
		{"simple", "Report", "report.pdf"},
		{"spaces and punctuation", "Q3 Report: Final!", "q3-report-final.pdf"},
		{"underscore kept", "my_file-v2", "my_file-v2.pdf"},
		{"dash runs collapse", "a -- b", "a-b.pdf"},
		{"accents dropped", "Café Menu", "caf-menu.pdf"},
		{"only symbols", "!!!", "draft-export.pdf"},
		{"leading and trailing dashes trimmed", "--x--", "x.pdf"},
		{"capped at 80", strings.Repeat("ab", 60), strings.Repeat("ab", 40) + ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeFileName(tt.title); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
