// Package render draws the prompt library onto an HTML surface.
//
// The Surface and Element interfaces keep binding logic independent of any
// concrete markup tree. Page implements both over golang.org/x/net/html, so
// the same cards serve server-rendered pages and tests alike. Text written
// through SetText becomes a text node and is entity-escaped on serialization,
// which keeps prompt-supplied strings from being interpreted as markup.
package render

// Element is a single node on a rendering surface.
//
// Elements are live views into their surface's tree; mutating an element
// mutates the surface.
type Element interface {
	// SetText replaces the element's children with a single text node.
	SetText(text string)
	// Text returns the concatenated text content of the element's subtree.
	Text() string
	// SetAttr sets or replaces an attribute.
	SetAttr(name, value string)
	// Attr returns an attribute's value, or "" when absent.
	Attr(name string) string
	// ToggleClass adds the class when on is true and removes it otherwise.
	ToggleClass(name string, on bool)
	// HasClass reports whether the class is present.
	HasClass(name string) bool
	// Append attaches child as the element's last child. The child must
	// originate from the same surface and be detached.
	Append(child Element)
	// Clear removes all children.
	Clear()
}

// Surface is the document a Binder draws on.
type Surface interface {
	// ElementByID finds the element carrying the given id attribute.
	ElementByID(id string) (Element, bool)
	// NewElement creates a detached element with the given tag.
	NewElement(tag string) Element
	// FavoriteToggles returns every favorite-toggle control on the surface.
	FavoriteToggles() []Element
}
