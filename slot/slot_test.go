package slot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/chrisuehlinger/slotshim/dom"
)

const cardMarkup = `<x-card id="host" shadow-id="x">` +
	`<header><div slot-name="xtitle"></div></header>` +
	`<section slot-name="x"></section>` +
	`<footer slot-name="xfoot"></footer>` +
	`</x-card>`

type fixture struct {
	doc  *dom.Document
	shim *Shim
	host *Host
	hook *test.Hook
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()

	doc, err := dom.ParseHTML(markup)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	el := doc.GetElementById("host")
	if el == nil {
		t.Fatal("fixture markup has no #host")
	}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	shim := New(Options{Logger: logger})

	return &fixture{doc: doc, shim: shim, host: shim.Patch(el), hook: hook}
}

func (f *fixture) elem(tag string, attrs ...string) *dom.Node {
	el := f.doc.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.SetAttribute(attrs[i], attrs[i+1])
	}
	return el.AsNode()
}

func (f *fixture) slotEl(id string) *dom.Element {
	matches := f.host.Element().QueryAttribute("slot-name", id)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// sameNode compares nodes by identity.
var sameNode = cmp.Comparer(func(a, b *dom.Node) bool { return a == b })

func names(list *dom.NodeList) []string {
	var out []string
	for _, n := range list.Slice() {
		if el := n.AsElement(); el != nil {
			out = append(out, el.LocalName())
		} else {
			out = append(out, n.NodeName())
		}
	}
	return out
}

func TestDefaultSlotNameAttribute(t *testing.T) {
	doc, err := dom.ParseHTML(`<x-card id="host"><div slot-name=""></div><b slot-name="foo"></b></x-card>`)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	logger, _ := test.NewNullLogger()
	h := New(Options{Logger: logger}).Patch(doc.GetElementById("host"))

	p := doc.CreateElement("p")
	h.AppendChild(p.AsNode())
	i := doc.CreateElement("i")
	i.SetAttribute("slot", "foo")
	h.AppendChild(i.AsNode())

	if diff := cmp.Diff([]string{"p", "i"}, names(h.ChildNodes())); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
	if p.AsNode().ParentElement().LocalName() != "div" {
		t.Error("Expected <p> in the slot-name=\"\" slot")
	}
}

func TestEmptyHost(t *testing.T) {
	f := newFixture(t, cardMarkup)
	h := f.host

	if h.ChildNodes().Length() != 0 {
		t.Errorf("Expected no child nodes, got %d", h.ChildNodes().Length())
	}
	if h.Children().Length() != 0 {
		t.Errorf("Expected no children, got %d", h.Children().Length())
	}
	if h.FirstChild() != nil || h.LastChild() != nil {
		t.Error("Expected nil first/last child")
	}
	if h.FirstElementChild() != nil || h.LastElementChild() != nil {
		t.Error("Expected nil first/last element child")
	}
	if h.HasChildNodes() {
		t.Error("Expected HasChildNodes to be false")
	}
	if h.ChildElementCount() != 0 {
		t.Errorf("Expected ChildElementCount 0, got %d", h.ChildElementCount())
	}
	if h.ChildNodes().Item(0) != nil {
		t.Error("Item(0) on an empty list should be nil")
	}
}

func TestAppendChildRoutesBySlotAttribute(t *testing.T) {
	f := newFixture(t, cardMarkup)

	body := f.elem("p")
	body.AppendChild(f.doc.CreateTextNode("text"))
	title := f.elem("h1", "slot", "title")

	if _, err := f.host.AppendChild(body); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if _, err := f.host.AppendChild(title); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if body.ParentNode() != f.slotEl("x").AsNode() {
		t.Error("Default child should be in the slot identified by the shadow id")
	}
	if title.ParentNode() != f.slotEl("xtitle").AsNode() {
		t.Error("slot=title child should be in the slot identified by 'xtitle'")
	}
	if diff := cmp.Diff([]string{"p", "h1"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
	if f.shim.AssignedSlot(title) != "title" {
		t.Errorf("Expected assigned slot 'title', got %q", f.shim.AssignedSlot(title))
	}
}

func TestAppendChildWithoutShadowID(t *testing.T) {
	f := newFixture(t, `<div id="host"><i slot-name=""></i><b slot-name="foo"></b></div>`)

	plain := f.elem("span")
	named := f.elem("em", "slot", "foo")
	f.host.AppendChild(plain)
	f.host.AppendChild(named)

	if plain.ParentElement().LocalName() != "i" {
		t.Error("Default child should land in the slot with an empty id")
	}
	if named.ParentElement().LocalName() != "b" {
		t.Error("slot=foo child should land in the slot with id 'foo'")
	}
}

func TestLogicalOrderFollowsSlotResolution(t *testing.T) {
	f := newFixture(t, cardMarkup)

	foot := f.elem("small", "slot", "foot")
	body := f.elem("p")
	title := f.elem("h1", "slot", "title")
	f.host.AppendChild(foot)
	f.host.AppendChild(body)
	f.host.AppendChild(title)

	// Physical order is header, section, footer; logical order is the
	// order in which the slot names were first resolved.
	if diff := cmp.Diff([]string{"small", "p", "h1"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
	if f.host.FirstChild() != foot || f.host.LastChild() != title {
		t.Error("First/last child should follow logical order")
	}

	var slots []string
	for _, info := range f.host.Slots() {
		slots = append(slots, info.Name)
	}
	if diff := cmp.Diff([]string{"foot", DefaultSlotName, "title"}, slots); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
}

func TestParentRoundTrip(t *testing.T) {
	f := newFixture(t, cardMarkup)
	child := f.elem("p")

	f.host.AppendChild(child)
	if f.shim.ParentNode(child) != f.host.Element().AsNode() {
		t.Error("ParentNode should be the host while routed")
	}
	if f.shim.ParentElement(child) != f.host.Element() {
		t.Error("ParentElement should be the host while routed")
	}
	if f.host.ChildNodes().IndexOf(child) != 0 {
		t.Error("Host ChildNodes should include the child")
	}

	removed, err := f.host.RemoveChild(child)
	if err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}
	if removed != child {
		t.Error("RemoveChild should return the removed node")
	}
	if f.shim.ParentNode(child) != nil {
		t.Error("ParentNode should be nil after removal")
	}
	if f.host.ChildNodes().IndexOf(child) != -1 {
		t.Error("Host ChildNodes should no longer include the child")
	}
	if f.shim.AssignedSlot(child) != "" {
		t.Error("A removed node has no assigned slot")
	}
}

func TestParentOfNonElementParent(t *testing.T) {
	f := newFixture(t, cardMarkup)
	frag := f.doc.CreateDocumentFragment()
	text := f.doc.CreateTextNode("loose")
	frag.AppendChild(text)

	if f.shim.ParentNode(text) != frag.AsNode() {
		t.Error("Untracked nodes should report their native parent")
	}
	if f.shim.ParentElement(text) != nil {
		t.Error("ParentElement should be nil when the parent is not an element")
	}
	if f.shim.ParentNode(nil) != nil {
		t.Error("ParentNode(nil) should be nil")
	}
}

func TestMissingSlotDropsNode(t *testing.T) {
	f := newFixture(t, cardMarkup)
	stray := f.elem("aside", "slot", "nope")

	result, err := f.host.AppendChild(stray)
	if err != nil {
		t.Fatalf("Dropping should not fail: %v", err)
	}
	if result != stray {
		t.Error("AppendChild should return its argument")
	}
	if stray.ParentNode() != nil {
		t.Error("Dropped node should not be inserted anywhere")
	}
	if f.host.HasChildNodes() {
		t.Error("Dropped node should not appear in the logical view")
	}

	// The miss is cached: the second lookup emits no new lookup event.
	lookups := 0
	for _, e := range f.hook.AllEntries() {
		if e.Message == "slot: no slot element" {
			lookups++
		}
	}
	f.host.AppendChild(f.elem("aside", "slot", "nope"))
	after := 0
	for _, e := range f.hook.AllEntries() {
		if e.Message == "slot: no slot element" {
			after++
		}
	}
	if lookups != 1 || after != 1 {
		t.Errorf("Expected exactly one cached miss lookup, got %d then %d", lookups, after)
	}
}

func TestInnerHTMLRoundTrip(t *testing.T) {
	f := newFixture(t, cardMarkup)

	markup := `<p class="lead">one <b>bold</b></p><h1 slot="title">Hi</h1>`
	if err := f.host.SetInnerHTML(markup); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if got := f.host.InnerHTML(); got != markup {
		t.Errorf("Expected %q, got %q", markup, got)
	}

	if err := f.host.SetInnerHTML(`<span>replaced</span>`); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if diff := cmp.Diff([]string{"span"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("Previous children should be gone (-want +got):\n%s", diff)
	}
	if f.slotEl("xtitle").AsNode().HasChildNodes() {
		t.Error("The title slot should have been emptied")
	}
}

func TestSetInnerHTMLUnusualTagNames(t *testing.T) {
	f := newFixture(t, cardMarkup)

	if err := f.host.SetInnerHTML(`<a@b>hi</a@b><x@y class="k"></x@y>`); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if got := f.host.InnerHTML(); got != `<a@b>hi</a@b><x@y class="k"></x@y>` {
		t.Errorf("Expected the parsed elements back, got '%s'", got)
	}
	if f.host.ChildElementCount() != 2 {
		t.Errorf("Expected 2 logical children, got %d", f.host.ChildElementCount())
	}
}

func TestSetInnerHTMLParsesInDivContext(t *testing.T) {
	f := newFixture(t, `<select id="host"><option slot-name=""></option></select>`)

	if err := f.host.SetInnerHTML(`<b>x</b>`); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if got := f.host.InnerHTML(); got != "<b>x</b>" {
		t.Errorf("Expected '<b>x</b>', got '%s'", got)
	}
}

func TestInnerHTMLTextIsNotEscaped(t *testing.T) {
	f := newFixture(t, cardMarkup)
	f.host.AppendChild(f.doc.CreateTextNode("a < b"))

	if got := f.host.InnerHTML(); got != "a < b" {
		t.Errorf("Expected raw text content, got %q", got)
	}
}

func TestOuterHTML(t *testing.T) {
	f := newFixture(t, `<x-card id="host" hidden=""><section slot-name=""></section></x-card>`)
	f.host.SetInnerHTML(`<p>x</p>`)

	want := `<x-card id="host" hidden><p>x</p></x-card>`
	if got := f.host.OuterHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNestedHostSerializesLogically(t *testing.T) {
	f := newFixture(t, `<div id="host"><section slot-name=""></section></div>`)
	f.host.SetInnerHTML(`<span id="inner" shadow-id="in"><em slot-name="in"></em></span>`)

	inner := f.shim.Patch(f.doc.GetElementById("inner"))
	inner.SetTextContent("deep")

	want := `<span id="inner" shadow-id="in">deep</span>`
	if got := f.host.InnerHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if f.host.TextContent() != "deep" {
		t.Errorf("Expected 'deep', got %q", f.host.TextContent())
	}
}

func TestTextContent(t *testing.T) {
	f := newFixture(t, cardMarkup)
	f.host.SetInnerHTML(`<p>old</p><h1 slot="title">title</h1>`)

	if err := f.host.SetTextContent("hello"); err != nil {
		t.Fatalf("SetTextContent failed: %v", err)
	}
	if f.host.TextContent() != "hello" {
		t.Errorf("Expected 'hello', got %q", f.host.TextContent())
	}
	if f.slotEl("x").TextContent() != "hello" {
		t.Errorf("Expected default slot text 'hello', got %q", f.slotEl("x").TextContent())
	}
	if f.slotEl("xtitle").AsNode().HasChildNodes() {
		t.Error("Other slots should have been emptied")
	}

	text := f.host.FirstChild()
	if text == nil || f.shim.ParentNode(text) != f.host.Element().AsNode() {
		t.Error("The new text node should be a logical child of the host")
	}
}

func TestAppendFragment(t *testing.T) {
	f := newFixture(t, cardMarkup)
	frag := f.doc.CreateDocumentFragment()
	p := f.elem("p")
	h1 := f.elem("h1", "slot", "title")
	b := f.elem("b")
	frag.AppendChild(p)
	frag.AppendChild(h1)
	frag.AppendChild(b)

	result, err := f.host.AppendChild(frag.AsNode())
	if err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if result != frag.AsNode() {
		t.Error("AppendChild should return the fragment")
	}
	if frag.AsNode().HasChildNodes() {
		t.Error("Fragment should be empty after the call")
	}
	if p.ParentNode() != f.slotEl("x").AsNode() || b.ParentNode() != f.slotEl("x").AsNode() {
		t.Error("Default children should be in the default slot")
	}
	if h1.ParentNode() != f.slotEl("xtitle").AsNode() {
		t.Error("Named child should be in its slot")
	}
	if diff := cmp.Diff([]string{"p", "b", "h1"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendFragmentDropsUnroutable(t *testing.T) {
	f := newFixture(t, cardMarkup)
	frag := f.doc.CreateDocumentFragment()
	keep := f.elem("p")
	drop := f.elem("p", "slot", "missing")
	frag.AppendChild(keep)
	frag.AppendChild(drop)

	f.host.AppendChild(frag.AsNode())

	if frag.AsNode().HasChildNodes() {
		t.Error("Fragment should be empty even when a child was dropped")
	}
	if drop.ParentNode() != nil {
		t.Error("Dropped child should be detached")
	}
	if f.host.ChildNodes().Length() != 1 {
		t.Errorf("Expected 1 logical child, got %d", f.host.ChildNodes().Length())
	}
}

func TestPatchIsIdempotent(t *testing.T) {
	f := newFixture(t, cardMarkup)
	el := f.host.Element()

	if !f.shim.IsPatched(el) {
		t.Error("Element should be marked as patched")
	}
	again := f.shim.Patch(el)
	if again != f.host {
		t.Error("Patching twice should return the same Host")
	}

	f.host.AppendChild(f.elem("p"))
	if again.ChildNodes().Length() != 1 {
		t.Error("Both handles must share state")
	}

	other := f.doc.CreateElement("div")
	if f.shim.IsPatched(other) || f.shim.Lookup(other) != nil {
		t.Error("Unpatched elements should not be reported as patched")
	}
}

func TestInsertBefore(t *testing.T) {
	f := newFixture(t, cardMarkup)
	first := f.elem("p")
	last := f.elem("p")
	f.host.AppendChild(first)
	f.host.AppendChild(last)

	mid := f.elem("hr")
	if _, err := f.host.InsertBefore(mid, last); err != nil {
		t.Fatalf("InsertBefore failed: %v", err)
	}
	if diff := cmp.Diff([]*dom.Node{first, mid, last}, f.host.ChildNodes().Slice(), sameNode); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}

	// A reference in another slot is passed through and rejected natively.
	title := f.elem("h1", "slot", "title")
	f.host.AppendChild(title)
	_, err := f.host.InsertBefore(f.elem("p"), title)
	domErr, ok := err.(*dom.DOMError)
	if !ok || domErr.Name != "NotFoundError" {
		t.Errorf("Expected NotFoundError, got %v", err)
	}

	// A nil reference appends.
	tail := f.elem("p")
	f.host.InsertBefore(tail, nil)
	if f.slotEl("x").AsNode().LastChild() != tail {
		t.Error("InsertBefore with nil reference should append to the slot")
	}
}

func TestRemoveChildNotFound(t *testing.T) {
	f := newFixture(t, cardMarkup)
	_, err := f.host.RemoveChild(f.elem("p"))
	domErr, ok := err.(*dom.DOMError)
	if !ok || domErr.Name != "NotFoundError" {
		t.Errorf("Expected the native NotFoundError, got %v", err)
	}
}

func TestReplaceChild(t *testing.T) {
	f := newFixture(t, cardMarkup)
	a := f.elem("p")
	old := f.elem("p")
	c := f.elem("p")
	f.host.AppendChild(a)
	f.host.AppendChild(old)
	f.host.AppendChild(c)

	repl := f.elem("em")
	got, err := f.host.ReplaceChild(repl, old)
	if err != nil {
		t.Fatalf("ReplaceChild failed: %v", err)
	}
	if got != old {
		t.Error("ReplaceChild should return the replaced node")
	}
	if f.shim.ParentNode(old) != nil {
		t.Error("Replaced node should have no parent")
	}
	if f.shim.ParentNode(repl) != f.host.Element().AsNode() {
		t.Error("Replacement should have the host as parent")
	}
	if diff := cmp.Diff([]*dom.Node{a, repl, c}, f.host.ChildNodes().Slice(), sameNode); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceChildWithUnroutableNode(t *testing.T) {
	f := newFixture(t, cardMarkup)
	old := f.elem("p")
	f.host.AppendChild(old)

	stray := f.elem("aside", "slot", "nope")
	got, err := f.host.ReplaceChild(stray, old)
	if err != nil {
		t.Fatalf("ReplaceChild failed: %v", err)
	}
	if got != old {
		t.Error("ReplaceChild should return the replaced node")
	}
	if old.ParentNode() != f.slotEl("x").AsNode() {
		t.Error("Expected the old node to stay in its slot")
	}
	if f.shim.ParentNode(old) != nil {
		t.Errorf("Expected no logical parent, got %v", f.shim.ParentNode(old))
	}

	// Moving it natively restores its native parent.
	other := f.elem("div")
	other.AppendChild(old)
	if f.shim.ParentNode(old) != other {
		t.Error("Expected the native parent after a native move")
	}
}

func TestReplaceChildWithFragment(t *testing.T) {
	f := newFixture(t, cardMarkup)
	a := f.elem("p")
	old := f.elem("p")
	f.host.AppendChild(a)
	f.host.AppendChild(old)

	frag := f.doc.CreateDocumentFragment()
	x := f.elem("i")
	y := f.elem("h1", "slot", "title")
	z := f.elem("u")
	frag.AppendChild(x)
	frag.AppendChild(y)
	frag.AppendChild(z)

	if _, err := f.host.ReplaceChild(frag.AsNode(), old); err != nil {
		t.Fatalf("ReplaceChild failed: %v", err)
	}
	if diff := cmp.Diff([]string{"p", "i", "u", "h1"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("ChildNodes mismatch (-want +got):\n%s", diff)
	}
}

func TestSiblings(t *testing.T) {
	f := newFixture(t, cardMarkup)
	p := f.elem("p")
	text := f.doc.CreateTextNode("t")
	h1 := f.elem("h1", "slot", "title")
	f.host.AppendChild(p)
	f.host.AppendChild(text)
	f.host.AppendChild(h1)

	if f.shim.NextSibling(p) != text {
		t.Error("NextSibling(p) should be the text node")
	}
	// Crosses from the default slot into the title slot.
	if f.shim.NextSibling(text) != h1 {
		t.Error("NextSibling(text) should be h1 in another slot")
	}
	if f.shim.NextSibling(h1) != nil {
		t.Error("NextSibling of the last child should be nil")
	}
	if f.shim.PreviousSibling(h1) != text || f.shim.PreviousSibling(p) != nil {
		t.Error("PreviousSibling mismatch")
	}
	if f.shim.NextElementSibling(p) != h1.AsElement() {
		t.Error("NextElementSibling should skip the text node")
	}
	if f.shim.PreviousElementSibling(h1) != p.AsElement() {
		t.Error("PreviousElementSibling should skip the text node")
	}
	if f.shim.PreviousElementSibling(p) != nil {
		t.Error("PreviousElementSibling of the first child should be nil")
	}

	f.host.RemoveChild(text)
	if f.shim.NextSibling(text) != nil || f.shim.PreviousSibling(text) != nil {
		t.Error("A detached node has no siblings")
	}
}

func TestDuplicateSlotsUseFirstMatch(t *testing.T) {
	f := newFixture(t, `<div id="host"><b slot-name=""></b><i slot-name=""></i></div>`)
	child := f.elem("span")
	f.host.AppendChild(child)

	if child.ParentElement().LocalName() != "b" {
		t.Error("The first slot in document order should win")
	}
	warned := false
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["count"] == 2 {
			warned = true
		}
	}
	if !warned {
		t.Error("Expected a duplicate slot warning")
	}
}

func TestInvalidateSlots(t *testing.T) {
	f := newFixture(t, `<div id="host"><b slot-name=""></b></div>`)
	late := f.elem("p", "slot", "late")
	f.host.AppendChild(late)
	if late.ParentNode() != nil {
		t.Fatal("Slot 'late' does not exist yet")
	}

	slot := f.doc.CreateElement("i")
	slot.SetAttribute("slot-name", "late")
	f.host.Element().AsNode().AppendChild(slot.AsNode())

	f.host.AppendChild(late)
	if late.ParentNode() != nil {
		t.Error("The cached miss should still apply")
	}

	f.host.InvalidateSlots()
	f.host.AppendChild(late)
	if late.ParentNode() != slot.AsNode() {
		t.Error("After invalidation the new slot should be found")
	}
}

func TestSetShadowID(t *testing.T) {
	f := newFixture(t, `<div id="host"><b slot-name="one"></b><i slot-name="two"></i></div>`)
	f.host.SetShadowID("two")
	if f.host.ShadowID() != "two" {
		t.Errorf("Expected shadow id 'two', got %q", f.host.ShadowID())
	}

	child := f.elem("span")
	f.host.AppendChild(child)
	if child.ParentElement().LocalName() != "i" {
		t.Error("Explicit shadow id should select the default slot")
	}
}

func TestResolve(t *testing.T) {
	f := newFixture(t, cardMarkup)
	el := f.host.Element()

	if got := f.shim.Resolve(el, f.elem("p", "slot", "title")); got != f.slotEl("xtitle") {
		t.Error("Resolve should return the title slot")
	}
	if got := f.shim.Resolve(el, f.elem("p", "slot", "")); got != f.slotEl("x") {
		t.Error("An empty slot attribute selects the default slot")
	}
	if got := f.shim.Resolve(el, f.doc.CreateTextNode("t")); got != f.slotEl("x") {
		t.Error("Text nodes go to the default slot")
	}
	if got := f.shim.Resolve(el, f.elem("p", "slot", "zzz")); got != nil {
		t.Error("Unknown slots resolve to nil")
	}
}

func TestTreeOf(t *testing.T) {
	f := newFixture(t, cardMarkup)
	plain := f.doc.CreateElement("div")

	var tree Tree = f.shim.TreeOf(plain)
	if _, ok := tree.(*Host); ok {
		t.Fatal("Unpatched element should get a native tree")
	}
	tree.AppendChild(f.elem("p"))
	tree.SetTextContent("x")
	if tree.InnerHTML() != "x" || tree.ChildElementCount() != 0 {
		t.Error("Native tree should behave like the element itself")
	}

	if f.shim.TreeOf(f.host.Element()) != Tree(f.host) {
		t.Error("Patched element should get its Host")
	}
}

func TestPackageLevelPatch(t *testing.T) {
	doc, _ := dom.ParseHTML(`<div id="host"><b slot-name=""></b></div>`)
	el := doc.GetElementById("host")

	h := Patch(el)
	if !Default().IsPatched(el) {
		t.Error("Patch should use the default shim")
	}
	if Patch(el) != h {
		t.Error("Package level Patch should be idempotent")
	}
	if Default().Options().DefaultSlot != DefaultSlotName {
		t.Error("Default shim should use the default options")
	}
}

func TestDiscoverSlots(t *testing.T) {
	f := newFixture(t, `<div id="host" shadow-id="s">`+
		`<p slot-name="sfoot"><b>pre</b></p>`+
		`<main slot-name="s">text</main>`+
		`<aside slot-name="other"></aside>`+
		`<span shadow-id="inner"><i slot-name="sinner"></i></span>`+
		`</div>`)

	var got []string
	for _, info := range f.host.DiscoverSlots() {
		got = append(got, info.Name+"="+info.Element.LocalName())
	}
	if diff := cmp.Diff([]string{"foot=p", DefaultSlotName + "=main"}, got); diff != "" {
		t.Errorf("DiscoverSlots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "#text"}, names(f.host.ChildNodes())); diff != "" {
		t.Errorf("Pre-rendered content should be logical children (-want +got):\n%s", diff)
	}
	first := f.host.FirstChild()
	if f.shim.ParentNode(first) != first.ParentNode() {
		t.Error("Pre-rendered content keeps its native parent until routed")
	}
}
