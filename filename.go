package draftkit

import (
	"regexp"
	"strings"
)

const (
	fallbackFileName = "draft-export"
	maxFileNameLen   = 80
)

var (
	unsafeFileChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashRuns        = regexp.MustCompile(`-+`)
)

// SanitizeFileName turns title into a lowercase ASCII slug with a .pdf
// extension. Titles that leave nothing behind become "draft-export.pdf".
func SanitizeFileName(title string) string {
	value := strings.TrimSpace(title)
	if value == "" {
		value = fallbackFileName
	}

	slug := unsafeFileChars.ReplaceAllString(strings.ToLower(value), "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	slug = strings.TrimPrefix(slug, "-")
	slug = strings.TrimSuffix(slug, "-")
	if len(slug) > maxFileNameLen {
		slug = slug[:maxFileNameLen]
	}
	if slug == "" {
		slug = fallbackFileName
	}
	return slug + ".pdf"
}
