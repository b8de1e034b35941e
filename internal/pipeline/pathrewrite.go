package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// localRefAttrs maps the elements whose references point at files next to
// the markdown source: slide images, page backgrounds and links.
var localRefAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths points relative image and link references at
// file:// URLs under sourceDir. The browser loads the deck from a temp file,
// so relative references would otherwise resolve against the temp dir.
// References that leave sourceDir are kept as written; an empty sourceDir
// disables the rewrite.
func RewriteRelativePaths(content, sourceDir string) (string, error) {
	if sourceDir == "" {
		return content, nil
	}
	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseDeck(content)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		resolveRefs(n, dir)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseDeck returns the document node for a full page, or the top-level
// nodes of a body fragment so rendering does not add html/body wrappers.
func parseDeck(content string) ([]*html.Node, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

func resolveRefs(root *html.Node, dir string) {
	visit := func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		key, ok := localRefAttrs[n.DataAtom]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != key || !isLocalRef(n.Attr[i].Val) {
				continue
			}
			target := filepath.Join(dir, n.Attr[i].Val)
			if withinDir(target, dir) {
				n.Attr[i].Val = fileURL(target)
			}
		}
	}
	visit(root)
	for n := range root.Descendants() {
		visit(n)
	}
}

// isLocalRef reports whether ref is a relative filesystem path: not empty,
// not absolute, not a fragment, and carrying neither scheme nor host.
func isLocalRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || filepath.IsAbs(ref) {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && !strings.HasPrefix(ref, "//")
}

// withinDir reports whether path is dir itself or a descendant of it.
func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL converts an absolute path to a file:// URL; Windows drive paths
// get the leading slash the URL form requires.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
