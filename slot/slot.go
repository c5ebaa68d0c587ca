// Package slot makes an element with hand-written slot sub-elements behave
// like a shadow host. Children inserted through a patched Host are routed
// into the descendant slot element named by their slot attribute, and
// traversal on the Host reports the logical (unslotted) children instead
// of the physical tree.
//
// Per-element state lives in side tables keyed by weak pointers, so
// nothing is stored on the nodes themselves and detached elements remain
// collectable.
package slot

import (
	"runtime"
	"sync"
	"weak"

	"github.com/sirupsen/logrus"

	"github.com/chrisuehlinger/slotshim/dom"
)

// DefaultSlotName is the slot a node without a slot attribute belongs to.
const DefaultSlotName = "content"

// Options configures the attribute contract of a Shim.
type Options struct {
	// SlotAttribute is read on children to pick their slot.
	SlotAttribute string
	// SlotIDAttribute identifies slot elements below a host. Its value is
	// the host's shadow id followed by the slot name, with the default
	// slot contributing an empty name.
	SlotIDAttribute string
	// ShadowIDAttribute is read on the host when no shadow id was set
	// with Host.SetShadowID.
	ShadowIDAttribute string
	// DefaultSlot names the slot used when SlotAttribute is absent or empty.
	DefaultSlot string
	// Logger receives lookup and routing events. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the attribute contract used by Patch.
func DefaultOptions() Options {
	return Options{
		SlotAttribute:     "slot",
		SlotIDAttribute:   "slot-name",
		ShadowIDAttribute: "shadow-id",
		DefaultSlot:       DefaultSlotName,
	}
}

// Shim owns the patch markers, slot caches and logical parent links of
// every element it patched. A Shim is meant to be used from the single
// goroutine driving its documents; the internal lock only guards the side
// tables against the runtime cleanups that prune collected nodes.
type Shim struct {
	opts Options
	log  logrus.FieldLogger

	mu    sync.Mutex
	hosts map[weak.Pointer[dom.Node]]*hostState
	links map[weak.Pointer[dom.Node]]link
}

// hostState is the private per-host data. It must not hold the host or
// its descendants strongly, or the host could never be collected.
type hostState struct {
	shadowID    string
	hasShadowID bool

	// names keeps first-resolution order, which is the logical child order.
	names []string
	slots map[string]weak.Pointer[dom.Node]

	wrapper weak.Pointer[Host]
}

// link records the logical placement of a routed child. A detached node
// still sitting in a slot keeps that slot in held.
type link struct {
	parent weak.Pointer[dom.Node]
	slot   string
	held   weak.Pointer[dom.Node]
}

// New creates a Shim with the given options. Empty fields fall back to
// DefaultOptions.
func New(opts Options) *Shim {
	def := DefaultOptions()
	if opts.SlotAttribute == "" {
		opts.SlotAttribute = def.SlotAttribute
	}
	if opts.SlotIDAttribute == "" {
		opts.SlotIDAttribute = def.SlotIDAttribute
	}
	if opts.ShadowIDAttribute == "" {
		opts.ShadowIDAttribute = def.ShadowIDAttribute
	}
	if opts.DefaultSlot == "" {
		opts.DefaultSlot = def.DefaultSlot
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Shim{
		opts:  opts,
		log:   log,
		hosts: make(map[weak.Pointer[dom.Node]]*hostState),
		links: make(map[weak.Pointer[dom.Node]]link),
	}
}

var defaultShim = New(DefaultOptions())

// Default returns the Shim used by the package level Patch.
func Default() *Shim {
	return defaultShim
}

// Patch patches el with the default Shim.
func Patch(el *dom.Element) *Host {
	return defaultShim.Patch(el)
}

// Options returns the effective options of the Shim.
func (s *Shim) Options() Options {
	return s.opts
}

// Patch returns the Host view of el, installing it on first use. Patching
// an element again is a no-op: the existing state is reused and, while the
// previous Host is still referenced, the same *Host is returned.
func (s *Shim) Patch(el *dom.Element) *Host {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := weak.Make(el.AsNode())
	st, ok := s.hosts[key]
	if !ok {
		st = &hostState{slots: make(map[string]weak.Pointer[dom.Node])}
		s.hosts[key] = st
		runtime.AddCleanup(el.AsNode(), s.forgetHost, key)
		s.log.WithField("host", el.LocalName()).Debug("slot: patched host")
	}
	if h := st.wrapper.Value(); h != nil {
		return h
	}
	h := &Host{el: el, shim: s, state: st}
	st.wrapper = weak.Make(h)
	return h
}

// IsPatched reports whether el was patched by this Shim.
func (s *Shim) IsPatched(el *dom.Element) bool {
	if el == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.hosts[weak.Make(el.AsNode())]
	return ok
}

// Lookup returns the Host of an already patched element, or nil.
func (s *Shim) Lookup(el *dom.Element) *Host {
	if !s.IsPatched(el) {
		return nil
	}
	return s.Patch(el)
}

func (s *Shim) forgetHost(key weak.Pointer[dom.Node]) {
	s.mu.Lock()
	delete(s.hosts, key)
	s.mu.Unlock()
}

func (s *Shim) forgetLink(key weak.Pointer[dom.Node]) {
	s.mu.Lock()
	delete(s.links, key)
	s.mu.Unlock()
}

// attach records that node is a logical child of host in the named slot.
func (s *Shim) attach(node *dom.Node, host *dom.Element, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := weak.Make(node)
	if _, ok := s.links[key]; !ok {
		runtime.AddCleanup(node, s.forgetLink, key)
	}
	s.links[key] = link{parent: weak.Make(host.AsNode()), slot: name}
}

// detach marks node as having no logical parent, even while it stays in
// its current physical parent.
func (s *Shim) detach(node *dom.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := weak.Make(node)
	if _, ok := s.links[key]; !ok {
		runtime.AddCleanup(node, s.forgetLink, key)
	}
	var l link
	if parent := node.ParentNode(); parent != nil {
		l.held = weak.Make(parent)
	}
	s.links[key] = l
}

func (s *Shim) linkOf(node *dom.Node) (link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[weak.Make(node)]
	return l, ok
}
