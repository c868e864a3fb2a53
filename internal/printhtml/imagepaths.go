package printhtml

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveImagePaths rewrites relative img sources in a rendered document to
// file:// URLs under baseDir, so a page loaded from a temp file still finds
// images stored next to the source document. Sources that would escape
// baseDir are left alone. An empty baseDir returns doc unchanged.
func ResolveImagePaths(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", err
	}
	if !rewriteImages(root, absBase) {
		return doc, nil
	}

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteImages walks the tree and reports whether any source changed.
func rewriteImages(n *html.Node, baseDir string) bool {
	changed := false
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, a := range n.Attr {
			if a.Key != "src" || !isLocalRelative(a.Val) {
				continue
			}
			abs := filepath.Join(baseDir, filepath.FromSlash(a.Val))
			if !isUnder(abs, baseDir) {
				continue
			}
			n.Attr[i].Val = fileURL(abs)
			changed = true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteImages(c, baseDir) {
			changed = true
		}
	}
	return changed
}

// isLocalRelative reports whether src is a relative filesystem path rather
// than a URL, an anchor or an absolute path.
func isLocalRelative(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return false
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false // http:, https:, file:, data:, blob:
	}
	return !filepath.IsAbs(src)
}

func isUnder(path, dir string) bool {
	dir = filepath.Clean(dir)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(path)+string(filepath.Separator), dir)
}

func fileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
