package slot

import "github.com/chrisuehlinger/slotshim/dom"

// Tree is the traversal and mutation surface shared by patched hosts and
// plain elements. Code written against Tree works on either.
type Tree interface {
	Element() *dom.Element

	ChildNodes() *dom.NodeList
	Children() *dom.NodeList
	FirstChild() *dom.Node
	LastChild() *dom.Node
	FirstElementChild() *dom.Element
	LastElementChild() *dom.Element
	ChildElementCount() int
	HasChildNodes() bool

	InnerHTML() string
	SetInnerHTML(markup string) error
	OuterHTML() string
	TextContent() string
	SetTextContent(text string) error

	AppendChild(node *dom.Node) (*dom.Node, error)
	InsertBefore(node, ref *dom.Node) (*dom.Node, error)
	RemoveChild(node *dom.Node) (*dom.Node, error)
	ReplaceChild(node, old *dom.Node) (*dom.Node, error)
}

// Native returns a Tree backed directly by the element's physical children.
func Native(el *dom.Element) Tree {
	return nativeTree{el: el}
}

// TreeOf returns the Host of el if the Shim patched it, else its Native tree.
func (s *Shim) TreeOf(el *dom.Element) Tree {
	if h := s.Lookup(el); h != nil {
		return h
	}
	return Native(el)
}

type nativeTree struct {
	el *dom.Element
}

func (t nativeTree) Element() *dom.Element { return t.el }

func (t nativeTree) ChildNodes() *dom.NodeList { return t.el.AsNode().ChildNodes() }

func (t nativeTree) Children() *dom.NodeList { return t.el.Children() }

func (t nativeTree) FirstChild() *dom.Node { return t.el.AsNode().FirstChild() }

func (t nativeTree) LastChild() *dom.Node { return t.el.AsNode().LastChild() }

func (t nativeTree) FirstElementChild() *dom.Element { return t.el.FirstElementChild() }

func (t nativeTree) LastElementChild() *dom.Element { return t.el.LastElementChild() }

func (t nativeTree) ChildElementCount() int { return t.el.ChildElementCount() }

func (t nativeTree) HasChildNodes() bool { return t.el.AsNode().HasChildNodes() }

func (t nativeTree) InnerHTML() string { return t.el.InnerHTML() }

func (t nativeTree) SetInnerHTML(markup string) error { return t.el.SetInnerHTML(markup) }

func (t nativeTree) OuterHTML() string { return t.el.OuterHTML() }

func (t nativeTree) TextContent() string { return t.el.TextContent() }

func (t nativeTree) SetTextContent(text string) error {
	t.el.SetTextContent(text)
	return nil
}

func (t nativeTree) AppendChild(node *dom.Node) (*dom.Node, error) {
	return t.el.AsNode().AppendChildWithError(node)
}

func (t nativeTree) InsertBefore(node, ref *dom.Node) (*dom.Node, error) {
	return t.el.AsNode().InsertBeforeWithError(node, ref)
}

func (t nativeTree) RemoveChild(node *dom.Node) (*dom.Node, error) {
	return t.el.AsNode().RemoveChildWithError(node)
}

func (t nativeTree) ReplaceChild(node, old *dom.Node) (*dom.Node, error) {
	return t.el.AsNode().ReplaceChildWithError(node, old)
}
