package slot

import (
	"strings"
	"weak"

	"github.com/chrisuehlinger/slotshim/dom"
)

// Host is the logical view of a patched element. Mutations are routed into
// the element's slot sub-elements and traversal reports the concatenation
// of every slot's children, in the order the slots were first resolved.
type Host struct {
	el    *dom.Element
	shim  *Shim
	state *hostState
}

var _ Tree = (*Host)(nil)

// Element returns the patched element.
func (h *Host) Element() *dom.Element {
	return h.el
}

// Shim returns the Shim that patched the element.
func (h *Host) Shim() *Shim {
	return h.shim
}

// ShadowID returns the prefix of the host's slot identifiers: the value set
// with SetShadowID, else the host's shadow id attribute, else "".
func (h *Host) ShadowID() string {
	if h.state.hasShadowID {
		return h.state.shadowID
	}
	return h.el.GetAttribute(h.shim.opts.ShadowIDAttribute)
}

// SetShadowID sets the shadow id explicitly. Slots already cached keep the
// element they resolved to.
func (h *Host) SetShadowID(id string) {
	h.state.shadowID = id
	h.state.hasShadowID = true
}

// InvalidateSlots forgets every cached slot lookup. Children already routed
// stay where they are, but they only show up in the logical view again once
// their slot name is resolved anew.
func (h *Host) InvalidateSlots() {
	h.state.names = nil
	h.state.slots = make(map[string]weak.Pointer[dom.Node])
}

// SlotInfo describes one cached slot lookup.
type SlotInfo struct {
	Name string
	// Element is nil when the lookup found no slot element.
	Element *dom.Element
}

// Slots returns the cached slot lookups in logical order.
func (h *Host) Slots() []SlotInfo {
	infos := make([]SlotInfo, 0, len(h.state.names))
	for _, name := range h.state.names {
		infos = append(infos, SlotInfo{Name: name, Element: h.state.slots[name].Value().AsElement()})
	}
	return infos
}

// Slot returns the physical slot element for name, resolving it if needed.
func (h *Host) Slot(name string) *dom.Element {
	return h.slotFor(name)
}

// DiscoverSlots resolves every slot element already present under the host,
// in document order, so content rendered into slots ahead of time shows up
// in the logical view. Slot elements inside a nested host are skipped, as
// are identifiers that do not start with the shadow id.
func (h *Host) DiscoverSlots() []SlotInfo {
	opts := h.shim.opts
	prefix := h.ShadowID()

	for _, n := range h.el.QuerySelectorAll("[" + opts.SlotIDAttribute + "]").Slice() {
		el := n.AsElement()
		if h.nested(el) {
			continue
		}
		id := el.GetAttribute(opts.SlotIDAttribute)
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		name := strings.TrimPrefix(id, prefix)
		if name == "" {
			name = opts.DefaultSlot
		}
		h.slotFor(name)
	}
	return h.Slots()
}

// nested reports whether an element between el and the host is itself a
// host.
func (h *Host) nested(el *dom.Element) bool {
	for p := el.AsNode().ParentElement(); p != nil && p != h.el; p = p.AsNode().ParentElement() {
		if p.HasAttribute(h.shim.opts.ShadowIDAttribute) || h.shim.IsPatched(p) {
			return true
		}
	}
	return false
}

// ChildNodes returns a snapshot of the logical children.
func (h *Host) ChildNodes() *dom.NodeList {
	var nodes []*dom.Node
	for _, info := range h.Slots() {
		if info.Element != nil {
			nodes = append(nodes, info.Element.AsNode().ChildNodes().Slice()...)
		}
	}
	return dom.NewStaticNodeList(nodes)
}

// Children returns a snapshot of the logical children that are elements.
func (h *Host) Children() *dom.NodeList {
	var elements []*dom.Node
	for _, n := range h.ChildNodes().Slice() {
		if n.NodeType() == dom.ElementNode {
			elements = append(elements, n)
		}
	}
	return dom.NewStaticNodeList(elements)
}

// FirstChild returns the first logical child, or nil.
func (h *Host) FirstChild() *dom.Node {
	return h.ChildNodes().Item(0)
}

// LastChild returns the last logical child, or nil.
func (h *Host) LastChild() *dom.Node {
	nodes := h.ChildNodes()
	return nodes.Item(nodes.Length() - 1)
}

// FirstElementChild returns the first logical child element, or nil.
func (h *Host) FirstElementChild() *dom.Element {
	return h.Children().Item(0).AsElement()
}

// LastElementChild returns the last logical child element, or nil.
func (h *Host) LastElementChild() *dom.Element {
	children := h.Children()
	return children.Item(children.Length() - 1).AsElement()
}

// ChildElementCount returns the number of logical child elements.
func (h *Host) ChildElementCount() int {
	return h.Children().Length()
}

// HasChildNodes reports whether the host has any logical children.
func (h *Host) HasChildNodes() bool {
	return h.ChildNodes().Length() > 0
}

// InnerHTML returns the outerHTML of each logical child element and the
// text content of every other logical child, concatenated. Text is not
// escaped.
func (h *Host) InnerHTML() string {
	var sb strings.Builder
	for _, n := range h.ChildNodes().Slice() {
		if el := n.AsElement(); el != nil {
			if child := h.shim.Lookup(el); child != nil {
				sb.WriteString(child.OuterHTML())
			} else {
				sb.WriteString(el.OuterHTML())
			}
			continue
		}
		sb.WriteString(n.TextContent())
	}
	return sb.String()
}

// SetInnerHTML parses markup in a detached div, removes every logical
// child and appends the parsed nodes through the slot routing. Parse errors
// are returned before anything is removed.
func (h *Host) SetInnerHTML(markup string) error {
	doc := h.el.AsNode().OwnerDocument()
	parser := doc.CreateElement("div")
	if err := parser.SetInnerHTML(markup); err != nil {
		return err
	}

	if err := h.removeAll(); err != nil {
		return err
	}

	frag := doc.CreateDocumentFragment()
	for parser.AsNode().FirstChild() != nil {
		if _, err := frag.AppendChild(parser.AsNode().FirstChild()); err != nil {
			return err
		}
	}
	_, err := h.AppendChild(frag.AsNode())
	return err
}

// OuterHTML serializes the host tag and its attributes around InnerHTML.
// Attributes with an empty value are written as a bare name.
func (h *Host) OuterHTML() string {
	tag := strings.ToLower(h.el.TagName())

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	for _, attr := range h.el.Attributes() {
		sb.WriteString(" ")
		sb.WriteString(attr.Name)
		if attr.Value != "" {
			sb.WriteString(`="`)
			sb.WriteString(attr.Value)
			sb.WriteString(`"`)
		}
	}
	sb.WriteString(">")
	sb.WriteString(h.InnerHTML())
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
	return sb.String()
}

// TextContent concatenates the text content of the logical children.
func (h *Host) TextContent() string {
	var sb strings.Builder
	for _, n := range h.ChildNodes().Slice() {
		if child := h.shim.Lookup(n.AsElement()); child != nil {
			sb.WriteString(child.TextContent())
			continue
		}
		sb.WriteString(n.TextContent())
	}
	return sb.String()
}

// SetTextContent removes every logical child and sets the native text
// content of the default slot. Without a default slot the text is dropped.
func (h *Host) SetTextContent(text string) error {
	if err := h.removeAll(); err != nil {
		return err
	}

	name := h.shim.opts.DefaultSlot
	slot := h.slotFor(name)
	if slot == nil {
		return nil
	}
	slot.SetTextContent(text)
	if first := slot.AsNode().FirstChild(); first != nil {
		h.shim.attach(first, h.el, name)
	}
	return nil
}

// removeAll removes logical children one at a time, always the first.
func (h *Host) removeAll() error {
	for {
		first := h.FirstChild()
		if first == nil {
			return nil
		}
		if _, err := h.RemoveChild(first); err != nil {
			return err
		}
	}
}

// AppendChild routes node, or each child of a fragment, to the end of its
// slot and returns node. Nodes without a slot are dropped silently.
func (h *Host) AppendChild(node *dom.Node) (*dom.Node, error) {
	for _, r := range h.route(node) {
		if _, err := r.slot.AsNode().AppendChildWithError(r.node); err != nil {
			return nil, err
		}
		h.shim.attach(r.node, h.el, r.name)
	}
	return node, nil
}

// InsertBefore routes node like AppendChild but inserts before ref in the
// resolved slot. ref is passed through as is, so it must live in the same
// slot; otherwise the native NotFoundError is returned.
func (h *Host) InsertBefore(node, ref *dom.Node) (*dom.Node, error) {
	for _, r := range h.route(node) {
		if _, err := r.slot.AsNode().InsertBeforeWithError(r.node, ref); err != nil {
			return nil, err
		}
		h.shim.attach(r.node, h.el, r.name)
	}
	return node, nil
}

// RemoveChild removes node from the slot holding it and clears its logical
// parent. A node sitting in one of the host's cached slots is removed from
// that slot; any other node is looked up through its slot attribute, and
// the native NotFoundError is returned when it is not there.
func (h *Host) RemoveChild(node *dom.Node) (*dom.Node, error) {
	if node == nil {
		return nil, dom.ErrNotFound("The node to be removed is null.")
	}

	slot := h.holdingSlot(node)
	if slot == nil {
		slot = h.slotFor(h.shim.SlotName(node))
	}
	if slot == nil {
		return node, nil
	}

	if _, err := slot.AsNode().RemoveChildWithError(node); err != nil {
		return nil, err
	}
	h.shim.detach(node)
	return node, nil
}

// holdingSlot returns the cached slot that is node's physical parent.
func (h *Host) holdingSlot(node *dom.Node) *dom.Element {
	parent := node.ParentNode()
	if parent == nil {
		return nil
	}
	for _, ref := range h.state.slots {
		if ref.Value() == parent {
			return parent.AsElement()
		}
	}
	return nil
}

// ReplaceChild replaces old with node inside the slot node resolves to and
// returns old. For a fragment, its first routed child takes old's place and
// the others follow it in their own slots.
func (h *Host) ReplaceChild(node, old *dom.Node) (*dom.Node, error) {
	routes := h.route(node)
	if len(routes) == 0 {
		if old != nil {
			h.shim.detach(old)
		}
		return old, nil
	}

	first := routes[0]
	if _, err := first.slot.AsNode().ReplaceChildWithError(first.node, old); err != nil {
		return nil, err
	}
	h.shim.attach(first.node, h.el, first.name)
	h.shim.detach(old)

	last := first
	for _, r := range routes[1:] {
		var ref *dom.Node
		if r.slot == last.slot {
			ref = last.node.NextSibling()
		}
		if _, err := r.slot.AsNode().InsertBeforeWithError(r.node, ref); err != nil {
			return nil, err
		}
		h.shim.attach(r.node, h.el, r.name)
		if r.slot == first.slot {
			last = r
		}
	}
	return old, nil
}
