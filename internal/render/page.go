package render

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// defaultShell is the markup every fresh page starts from: an empty prompt
// grid and a zeroed favorites counter, matching the ids the Binder targets.
const defaultShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PromptDeck</title>
</head>
<body>
<header class="toolbar">Favorites: <span id="favorites-count">0</span></header>
<main id="prompt-grid"></main>
</body>
</html>`

// Page is a Surface backed by an x/net/html node tree.
type Page struct {
	doc *html.Node
}

var _ Surface = (*Page)(nil)

// NewPage returns a page holding the default application shell.
func NewPage() *Page {
	p, err := ParsePage(strings.NewReader(defaultShell))
	if err != nil {
		// The embedded shell always parses.
		panic(err)
	}
	return p
}

// ParsePage builds a page from existing markup. Fragments are accepted; the
// parser wraps them in a full document.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

func (p *Page) ElementByID(id string) (Element, bool) {
	found := findNode(p.doc, func(n *html.Node) bool {
		return attrValue(n, "id") == id
	})
	if found == nil {
		return nil, false
	}
	return &node{n: found}, true
}

func (p *Page) NewElement(tag string) Element {
	return &node{n: &html.Node{Type: html.ElementNode, Data: tag}}
}

func (p *Page) FavoriteToggles() []Element {
	var toggles []Element
	walkNodes(p.doc, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, ToggleClass) {
			toggles = append(toggles, &node{n: n})
		}
	})
	return toggles
}

// HTML serializes the page back to markup. Text set through elements is
// entity-escaped here.
func (p *Page) HTML() (string, error) {
	var buf strings.Builder
	if err := html.Render(&buf, p.doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// findNode returns the first element in depth-first order matching the
// predicate, or nil.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}
