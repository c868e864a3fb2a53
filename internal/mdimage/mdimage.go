// Package mdimage recognizes Markdown image references.
//
// It is the single source of truth for "is this line an image?" and is shared
// by line wrapping, pagination, export routing and print rendering so those
// call sites can never disagree.
//
// Accepted shapes, on a line of their own:
//
//	![alt](src)
//	![alt](src "title")
//	![alt](src 'title')
//	![alt](<src with spaces>)
package mdimage

import (
	"regexp"
	"strings"
)

var (
	// imageLine matches a whole trimmed line holding one image reference.
	imageLine = regexp.MustCompile(`^!\[([^\]]*)\]\((.+)\)$`)

	// titledBody splits `src "title"` or `src 'title'` inside the parentheses.
	titledBody = regexp.MustCompile(`^(.*\S)\s+("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')\s*$`)

	// inlineImage finds image references anywhere in text, including mid-line.
	inlineImage = regexp.MustCompile(`!\[[^\]]*\]\(([^)]*)\)`)
)

// Image is a parsed image reference.
type Image struct {
	Alt   string
	Src   string
	Title string
}

// Ref is an image reference found anywhere in a document.
// Src is the raw text between the parentheses, untrimmed.
type Ref struct {
	Match string
	Src   string
}

// Parse parses line as a single image reference.
// The line is trimmed first; text spanning several lines never matches.
func Parse(line string) (Image, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Image{}, false
	}

	m := imageLine.FindStringSubmatch(trimmed)
	if m == nil {
		return Image{}, false
	}

	body := strings.TrimSpace(m[2])
	if body == "" {
		return Image{}, false
	}

	src, title := body, ""
	if t := titledBody.FindStringSubmatch(body); t != nil {
		src = t[1]
		if tok := t[2]; len(tok) >= 2 {
			title = tok[1 : len(tok)-1]
		}
	}

	src = strings.TrimSpace(src)
	if src == "" {
		return Image{}, false
	}
	if len(src) > 2 && strings.HasPrefix(src, "<") && strings.HasSuffix(src, ">") {
		src = strings.TrimSpace(src[1 : len(src)-1])
	}
	if src == "" {
		return Image{}, false
	}

	return Image{Alt: m[1], Src: src, Title: title}, true
}

// IsImageLine reports whether line is a single image reference.
func IsImageLine(line string) bool {
	_, ok := Parse(line)
	return ok
}

// ContainsImage reports whether any line of content is an image line.
func ContainsImage(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if IsImageLine(strings.TrimSuffix(line, "\r")) {
			return true
		}
	}
	return false
}

// SingleImage returns the image when the whole page is one image reference.
func SingleImage(page string) (Image, bool) {
	return Parse(page)
}

// FindAll returns every image reference in content, inline ones included.
func FindAll(content string) []Ref {
	matches := inlineImage.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]Ref, len(matches))
	for i, m := range matches {
		refs[i] = Ref{Match: m[0], Src: m[1]}
	}
	return refs
}
