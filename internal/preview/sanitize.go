package preview

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// chromaClass matches the short class names chroma emits.
var chromaClass = regexp.MustCompile(`^[a-z0-9 _-]+$`)

// newPolicy allows user-generated content plus what the converter adds:
// highlight classes, <mark>, footnote links, and inline data images.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(chromaClass).OnElements("pre", "code", "span", "div", "sup", "li", "section", "a", "hr")
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	p.AllowElements("mark")
	p.AllowDataURIImages()
	p.RequireParseableURLs(true)
	return p
}
