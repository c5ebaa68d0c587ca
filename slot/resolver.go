package slot

import (
	"weak"

	"github.com/sirupsen/logrus"

	"github.com/chrisuehlinger/slotshim/dom"
)

// routed pairs a node with the physical slot that receives it.
type routed struct {
	node *dom.Node
	slot *dom.Element
	name string
}

// SlotName returns the slot node belongs to: its slot attribute when it is
// an element carrying a non-empty one, otherwise the default slot.
func (s *Shim) SlotName(node *dom.Node) string {
	if el := node.AsElement(); el != nil {
		if name := el.GetAttribute(s.opts.SlotAttribute); name != "" {
			return name
		}
	}
	return s.opts.DefaultSlot
}

// Resolve returns the physical slot of host that receives node, or nil
// when host has no slot for it. Callers drop nodes that resolve to nil.
func (s *Shim) Resolve(host *dom.Element, node *dom.Node) *dom.Element {
	return s.Patch(host).slotFor(s.SlotName(node))
}

// slotFor returns the physical slot element for name, performing at most
// one descendant search per name for the lifetime of the cache.
func (h *Host) slotFor(name string) *dom.Element {
	st := h.state
	if ref, ok := st.slots[name]; ok {
		return ref.Value().AsElement()
	}

	s := h.shim
	value := h.ShadowID()
	if name != s.opts.DefaultSlot {
		value += name
	}

	log := s.log.WithFields(logrus.Fields{
		"host": h.el.LocalName(),
		"slot": name,
		"id":   value,
	})

	var found *dom.Element
	matches := h.el.QueryAttribute(s.opts.SlotIDAttribute, value)
	if len(matches) > 0 {
		found = matches[0]
	}
	if len(matches) > 1 {
		log.WithField("count", len(matches)).Warn("slot: duplicate slot elements, using the first")
	}
	if found == nil {
		log.Debug("slot: no slot element")
	} else {
		log.Debug("slot: resolved")
	}

	st.names = append(st.names, name)
	if found != nil {
		st.slots[name] = weak.Make(found.AsNode())
	} else {
		st.slots[name] = weak.Pointer[dom.Node]{}
	}
	return found
}

// route expands node into the ordered list of nodes it stands for (the
// children of a fragment, captured before anything moves, or node itself)
// and pairs each with its slot. Nodes without a slot are left out; a
// dropped fragment child is taken out of the fragment so the fragment
// ends up empty like a native insertion leaves it.
func (h *Host) route(node *dom.Node) []routed {
	var nodes []*dom.Node
	dom.EachNodeOrFragmentNodes(node, func(n *dom.Node, index int) {
		// The first visit carries the highest index.
		if nodes == nil {
			nodes = make([]*dom.Node, index+1)
		}
		nodes[index] = n
	})

	routes := make([]routed, 0, len(nodes))
	for _, n := range nodes {
		name := h.shim.SlotName(n)
		slot := h.slotFor(name)
		if slot == nil {
			h.shim.log.WithFields(logrus.Fields{
				"host": h.el.LocalName(),
				"slot": name,
				"node": n.NodeName(),
			}).Debug("slot: dropping node without slot")
			if parent := n.ParentNode(); parent != nil && parent == node {
				parent.RemoveChild(n)
			}
			continue
		}
		routes = append(routes, routed{node: n, slot: slot, name: name})
	}
	return routes
}
