package render

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// node adapts one html.Node to the Element interface.
type node struct {
	n *html.Node
}

var _ Element = (*node)(nil)

func (e *node) SetText(text string) {
	e.Clear()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *node) Text() string {
	var buf strings.Builder
	collectText(e.n, &buf)
	return buf.String()
}

func (e *node) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *node) Attr(name string) string {
	return attrValue(e.n, name)
}

func (e *node) ToggleClass(name string, on bool) {
	classes := strings.Fields(e.Attr("class"))
	present := slices.Contains(classes, name)
	switch {
	case on && !present:
		classes = append(classes, name)
	case !on && present:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == name })
	default:
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

func (e *node) HasClass(name string) bool {
	return hasClass(e.n, name)
}

func (e *node) Append(child Element) {
	c, ok := child.(*node)
	if !ok {
		return
	}
	e.n.AppendChild(c.n)
}

func (e *node) Clear() {
	for e.n.FirstChild != nil {
		e.n.RemoveChild(e.n.FirstChild)
	}
}

// collectText recursively gathers text content from a subtree.
func collectText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, name string) bool {
	return slices.Contains(strings.Fields(attrValue(n, "class")), name)
}
