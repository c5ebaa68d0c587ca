package slot

import "github.com/chrisuehlinger/slotshim/dom"

// ParentNode returns the logical parent of node: the host it was routed
// into while it still sits in one of that host's slots, otherwise its
// native parent. A node removed or replaced through a Host has no parent
// until it moves.
func (s *Shim) ParentNode(node *dom.Node) *dom.Node {
	if node == nil {
		return nil
	}
	if h := s.logicalHost(node); h != nil {
		return h.el.AsNode()
	}
	parent := node.ParentNode()
	if l, ok := s.linkOf(node); ok && parent != nil && l.held.Value() == parent {
		return nil
	}
	return parent
}

// ParentElement returns ParentNode when it is an element, else nil.
func (s *Shim) ParentElement(node *dom.Node) *dom.Element {
	return s.ParentNode(node).AsElement()
}

// AssignedSlot returns the slot name node was routed to, or "" when node
// is not a logical child of any host.
func (s *Shim) AssignedSlot(node *dom.Node) string {
	if s.logicalHost(node) == nil {
		return ""
	}
	l, _ := s.linkOf(node)
	return l.slot
}

// NextSibling returns the logical child following node in its host's
// ChildNodes, or nil. Nodes outside any host use the native sibling.
func (s *Shim) NextSibling(node *dom.Node) *dom.Node {
	if node == nil {
		return nil
	}
	h := s.logicalHost(node)
	if h == nil {
		return node.NextSibling()
	}
	children := h.ChildNodes()
	idx := children.IndexOf(node)
	if idx < 0 {
		return nil
	}
	return children.Item(idx + 1)
}

// PreviousSibling returns the logical child preceding node, or nil.
func (s *Shim) PreviousSibling(node *dom.Node) *dom.Node {
	if node == nil {
		return nil
	}
	h := s.logicalHost(node)
	if h == nil {
		return node.PreviousSibling()
	}
	children := h.ChildNodes()
	idx := children.IndexOf(node)
	if idx < 0 {
		return nil
	}
	return children.Item(idx - 1)
}

// NextElementSibling follows NextSibling until it reaches an element.
func (s *Shim) NextElementSibling(node *dom.Node) *dom.Element {
	for sib := s.NextSibling(node); sib != nil; sib = s.NextSibling(sib) {
		if el := sib.AsElement(); el != nil {
			return el
		}
	}
	return nil
}

// PreviousElementSibling follows PreviousSibling until it reaches an element.
func (s *Shim) PreviousElementSibling(node *dom.Node) *dom.Element {
	for sib := s.PreviousSibling(node); sib != nil; sib = s.PreviousSibling(sib) {
		if el := sib.AsElement(); el != nil {
			return el
		}
	}
	return nil
}

// logicalHost returns the Host node is a logical child of. The link is only
// trusted while node's physical parent is one of that host's cached slots,
// so nodes moved natively elsewhere fall back to the native tree.
func (s *Shim) logicalHost(node *dom.Node) *Host {
	if node == nil {
		return nil
	}
	l, ok := s.linkOf(node)
	if !ok {
		return nil
	}
	parent := l.parent.Value().AsElement()
	if parent == nil {
		return nil
	}
	h := s.Lookup(parent)
	if h == nil || h.holdingSlot(node) == nil {
		return nil
	}
	return h
}
