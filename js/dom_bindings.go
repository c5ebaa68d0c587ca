package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/slotshim/dom"
	"github.com/chrisuehlinger/slotshim/slot"
)

// domExceptionCode returns the legacy exception code for a DOMException name.
func domExceptionCode(name string) int {
	switch name {
	case "HierarchyRequestError":
		return 3
	case "InvalidCharacterError":
		return 5
	case "NotFoundError":
		return 8
	case "SyntaxError":
		return 12
	}
	return 0
}

// DOMBinder provides methods to bind DOM objects to JavaScript. Element
// objects read and write their children through the Shim, so an element
// passed to patch() behaves like a shadow host from the script's side.
type DOMBinder struct {
	runtime *Runtime
	shim    *slot.Shim
	nodeMap map[*dom.Node]*goja.Object // One JS object per DOM node

	nodeProto         *goja.Object
	elementProto      *goja.Object
	domExceptionProto *goja.Object
}

// NewDOMBinder creates a DOM binder for the given runtime and installs the
// global patch function. A nil shim uses slot.Default().
func NewDOMBinder(runtime *Runtime, shim *slot.Shim) *DOMBinder {
	if shim == nil {
		shim = slot.Default()
	}
	b := &DOMBinder{
		runtime: runtime,
		shim:    shim,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
	b.setupPrototypes()
	b.setupPatch()
	return b
}

// Shim returns the shim element bindings route through.
func (b *DOMBinder) Shim() *slot.Shim {
	return b.shim
}

// setupPrototypes creates the Node and DOMException constructors.
func (b *DOMBinder) setupPrototypes() {
	vm := b.runtime.vm

	b.nodeProto = vm.NewObject()
	nodeCtor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		panic(vm.NewTypeError("Illegal constructor"))
	}).ToObject(vm)
	nodeCtor.Set("prototype", b.nodeProto)
	b.nodeProto.Set("constructor", nodeCtor)
	nodeCtor.Set("ELEMENT_NODE", int(dom.ElementNode))
	nodeCtor.Set("TEXT_NODE", int(dom.TextNode))
	nodeCtor.Set("COMMENT_NODE", int(dom.CommentNode))
	nodeCtor.Set("DOCUMENT_NODE", int(dom.DocumentNode))
	nodeCtor.Set("DOCUMENT_TYPE_NODE", int(dom.DocumentTypeNode))
	nodeCtor.Set("DOCUMENT_FRAGMENT_NODE", int(dom.DocumentFragmentNode))
	vm.Set("Node", nodeCtor)

	b.elementProto = vm.NewObject()
	b.elementProto.SetPrototype(b.nodeProto)
	elementCtor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		panic(vm.NewTypeError("Illegal constructor"))
	}).ToObject(vm)
	elementCtor.Set("prototype", b.elementProto)
	b.elementProto.Set("constructor", elementCtor)
	vm.Set("Element", elementCtor)

	// DOMException extends Error.
	b.domExceptionProto = vm.NewObject()
	errorProto := vm.Get("Error").ToObject(vm).Get("prototype").ToObject(vm)
	b.domExceptionProto.SetPrototype(errorProto)
	excCtor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		message, name := "", "Error"
		if len(call.Arguments) > 0 {
			message = call.Arguments[0].String()
		}
		if len(call.Arguments) > 1 {
			name = call.Arguments[1].String()
		}
		call.This.Set("message", message)
		call.This.Set("name", name)
		call.This.Set("code", domExceptionCode(name))
		return call.This
	}).ToObject(vm)
	excCtor.Set("prototype", b.domExceptionProto)
	b.domExceptionProto.Set("constructor", excCtor)
	excCtor.Set("HIERARCHY_REQUEST_ERR", 3)
	excCtor.Set("INVALID_CHARACTER_ERR", 5)
	excCtor.Set("NOT_FOUND_ERR", 8)
	excCtor.Set("SYNTAX_ERR", 12)
	vm.Set("DOMException", excCtor)
}

// setupPatch installs patch(element), which turns element into a slot host
// and returns the same element object.
func (b *DOMBinder) setupPatch() {
	vm := b.runtime.vm
	vm.Set("patch", func(call goja.FunctionCall) goja.Value {
		el := b.elementArg(call, "patch")
		b.shim.Patch(el)
		return b.BindElement(el)
	})
}

// BindDocument binds doc and sets it as the global document.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	obj := b.bindDocument(doc)
	b.runtime.vm.Set("document", obj)
	return obj
}

func (b *DOMBinder) bindDocument(doc *dom.Document) *goja.Object {
	node := doc.AsNode()
	if obj, ok := b.nodeMap[node]; ok {
		return obj
	}

	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.SetPrototype(b.nodeProto)
	obj.Set("_goNode", node)
	b.nodeMap[node] = obj
	b.bindNodeProperties(obj, node)

	obj.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required, but only 0 present."))
		}
		el, err := doc.CreateElementWithError(call.Arguments[0].String())
		if err != nil {
			b.throwError(err)
		}
		return b.BindElement(el)
	})

	obj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		return b.BindNode(doc.CreateTextNode(stringArg(call, 0)))
	})

	obj.Set("createComment", func(call goja.FunctionCall) goja.Value {
		return b.BindNode(doc.CreateComment(stringArg(call, 0)))
	})

	obj.Set("createDocumentFragment", func(call goja.FunctionCall) goja.Value {
		return b.BindNode(doc.CreateDocumentFragment().AsNode())
	})

	obj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.GetElementById(stringArg(call, 0)))
	})

	obj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.QuerySelector(stringArg(call, 0)))
	})

	obj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		return b.BindNodeList(doc.QuerySelectorAll(stringArg(call, 0)))
	})

	return obj
}

// BindElement returns the JS object for el.
func (b *DOMBinder) BindElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	node := el.AsNode()
	if obj, ok := b.nodeMap[node]; ok {
		return obj
	}

	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.SetPrototype(b.elementProto)
	obj.Set("_goNode", node)
	b.nodeMap[node] = obj
	b.bindNodeProperties(obj, node)

	obj.DefineAccessorProperty("tagName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("localName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.LocalName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("id", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		el.SetAttribute("id", stringArg(call, 0))
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := stringArg(call, 0)
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(stringArg(call, 0), stringArg(call, 1))
		return goja.Undefined()
	})

	obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(stringArg(call, 0)))
	})

	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(stringArg(call, 0))
		return goja.Undefined()
	})

	obj.Set("matches", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Matches(stringArg(call, 0)))
	})

	obj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(el.QuerySelector(stringArg(call, 0)))
	})

	obj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		return b.BindNodeList(el.QuerySelectorAll(stringArg(call, 0)))
	})

	// Logical tree accessors. These go through the Shim on every call, so
	// they switch to slot routing as soon as the element is patched.
	obj.DefineAccessorProperty("children", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.BindNodeList(b.shim.TreeOf(el).Children())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("childElementCount", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(b.shim.TreeOf(el).ChildElementCount())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("firstElementChild", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(b.shim.TreeOf(el).FirstElementChild())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("lastElementChild", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(b.shim.TreeOf(el).LastElementChild())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("previousElementSibling", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(b.shim.PreviousElementSibling(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("nextElementSibling", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(b.shim.NextElementSibling(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("innerHTML", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(b.shim.TreeOf(el).InnerHTML())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if err := b.shim.TreeOf(el).SetInnerHTML(stringArg(call, 0)); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("outerHTML", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(b.shim.TreeOf(el).OuterHTML())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("slotted", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(b.shim.IsPatched(el))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	return obj
}

// BindNode returns the JS object for node, whatever its type.
func (b *DOMBinder) BindNode(node *dom.Node) *goja.Object {
	if node == nil {
		return nil
	}
	switch node.NodeType() {
	case dom.ElementNode:
		return b.BindElement(node.AsElement())
	case dom.DocumentNode:
		return b.bindDocument((*dom.Document)(node))
	}
	if obj, ok := b.nodeMap[node]; ok {
		return obj
	}

	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.SetPrototype(b.nodeProto)
	obj.Set("_goNode", node)
	b.nodeMap[node] = obj
	b.bindNodeProperties(obj, node)

	switch node.NodeType() {
	case dom.TextNode, dom.CommentNode:
		obj.DefineAccessorProperty("data", vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(node.NodeValue())
		}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
			node.SetNodeValue(stringArg(call, 0))
			return goja.Undefined()
		}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	case dom.DocumentFragmentNode:
		frag := node.AsDocumentFragment()
		obj.DefineAccessorProperty("childElementCount", vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(frag.ChildElementCount())
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	return obj
}

// bindNodeProperties adds the Node interface to obj. Parent and sibling
// accessors report the logical tree; child accessors and mutation methods
// go through the node's container.
func (b *DOMBinder) bindNodeProperties(obj *goja.Object, node *dom.Node) {
	vm := b.runtime.vm

	obj.Set("nodeType", int(node.NodeType()))
	obj.DefineAccessorProperty("nodeName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.NodeName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("nodeValue", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		switch node.NodeType() {
		case dom.TextNode, dom.CommentNode:
			return vm.ToValue(node.NodeValue())
		}
		return goja.Null()
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		node.SetNodeValue(stringArg(call, 0))
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("ownerDocument", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		doc := node.OwnerDocument()
		if doc == nil {
			return goja.Null()
		}
		return b.bindDocument(doc)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeOrNull(b.shim.ParentNode(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("parentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(b.shim.ParentElement(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("previousSibling", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeOrNull(b.shim.PreviousSibling(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("nextSibling", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeOrNull(b.shim.NextSibling(node))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("assignedSlot", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if name := b.shim.AssignedSlot(node); name != "" {
			return vm.ToValue(name)
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("firstChild", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeOrNull(b.container(node).FirstChild())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("lastChild", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeOrNull(b.container(node).LastChild())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("childNodes", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.BindNodeList(b.container(node).ChildNodes())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if node.NodeType() == dom.DocumentNode {
			return goja.Null()
		}
		return vm.ToValue(b.container(node).TextContent())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if node.NodeType() == dom.DocumentNode {
			return goja.Undefined()
		}
		text := ""
		if len(call.Arguments) > 0 && !goja.IsNull(call.Arguments[0]) {
			text = call.Arguments[0].String()
		}
		if err := b.container(node).SetTextContent(text); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("hasChildNodes", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(b.container(node).HasChildNodes())
	})

	obj.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.nodeArg(call, 0, "appendChild")
		result, err := b.container(node).AppendChild(child)
		if err != nil {
			b.throwError(err)
		}
		return b.BindNode(result)
	})

	obj.Set("insertBefore", func(call goja.FunctionCall) goja.Value {
		child := b.nodeArg(call, 0, "insertBefore")
		var ref *dom.Node
		if len(call.Arguments) > 1 && !goja.IsNull(call.Arguments[1]) && !goja.IsUndefined(call.Arguments[1]) {
			ref = b.nodeArg(call, 1, "insertBefore")
		}
		result, err := b.container(node).InsertBefore(child, ref)
		if err != nil {
			b.throwError(err)
		}
		return b.BindNode(result)
	})

	obj.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		child := b.nodeArg(call, 0, "removeChild")
		result, err := b.container(node).RemoveChild(child)
		if err != nil {
			b.throwError(err)
		}
		return b.BindNode(result)
	})

	obj.Set("replaceChild", func(call goja.FunctionCall) goja.Value {
		child := b.nodeArg(call, 0, "replaceChild")
		old := b.nodeArg(call, 1, "replaceChild")
		result, err := b.container(node).ReplaceChild(child, old)
		if err != nil {
			b.throwError(err)
		}
		return b.BindNode(result)
	})

	obj.Set("contains", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 || goja.IsNull(call.Arguments[0]) {
			return vm.ToValue(false)
		}
		return vm.ToValue(node.Contains(b.getGoNode(call.Arguments[0].ToObject(vm))))
	})
}

// BindNodeList creates an array-like JavaScript NodeList. Indexed properties
// are fixed when the list is bound, so scripts should re-read childNodes
// after a mutation.
func (b *DOMBinder) BindNodeList(nodeList *dom.NodeList) *goja.Object {
	vm := b.runtime.vm
	jsList := vm.NewObject()

	jsList.DefineAccessorProperty("length", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(nodeList.Length())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsList.Set("item", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		return b.nodeOrNull(nodeList.Item(int(call.Arguments[0].ToInteger())))
	})

	for i := 0; i < nodeList.Length(); i++ {
		idx := i
		jsList.DefineAccessorProperty(vm.ToValue(idx).String(), vm.ToValue(func(call goja.FunctionCall) goja.Value {
			node := nodeList.Item(idx)
			if node == nil {
				return goja.Undefined()
			}
			return b.BindNode(node)
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}

	jsList.Set("forEach", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			return goja.Undefined()
		}
		var thisArg goja.Value = goja.Undefined()
		if len(call.Arguments) > 1 {
			thisArg = call.Arguments[1]
		}
		for i, node := range nodeList.Slice() {
			if _, err := callback(thisArg, b.BindNode(node), vm.ToValue(i), jsList); err != nil {
				panic(err)
			}
		}
		return goja.Undefined()
	})

	return jsList
}

// container is the child-facing part of slot.Tree, also implemented for
// documents and fragments.
type container interface {
	ChildNodes() *dom.NodeList
	FirstChild() *dom.Node
	LastChild() *dom.Node
	HasChildNodes() bool
	TextContent() string
	SetTextContent(text string) error
	AppendChild(node *dom.Node) (*dom.Node, error)
	InsertBefore(node, ref *dom.Node) (*dom.Node, error)
	RemoveChild(node *dom.Node) (*dom.Node, error)
	ReplaceChild(node, old *dom.Node) (*dom.Node, error)
}

func (b *DOMBinder) container(node *dom.Node) container {
	if el := node.AsElement(); el != nil {
		return b.shim.TreeOf(el)
	}
	return nodeContainer{node}
}

type nodeContainer struct {
	n *dom.Node
}

func (c nodeContainer) ChildNodes() *dom.NodeList { return c.n.ChildNodes() }

func (c nodeContainer) FirstChild() *dom.Node { return c.n.FirstChild() }

func (c nodeContainer) LastChild() *dom.Node { return c.n.LastChild() }

func (c nodeContainer) HasChildNodes() bool { return c.n.HasChildNodes() }

func (c nodeContainer) TextContent() string { return c.n.TextContent() }

func (c nodeContainer) SetTextContent(text string) error {
	c.n.SetTextContent(text)
	return nil
}

func (c nodeContainer) AppendChild(node *dom.Node) (*dom.Node, error) {
	return c.n.AppendChildWithError(node)
}

func (c nodeContainer) InsertBefore(node, ref *dom.Node) (*dom.Node, error) {
	return c.n.InsertBeforeWithError(node, ref)
}

func (c nodeContainer) RemoveChild(node *dom.Node) (*dom.Node, error) {
	return c.n.RemoveChildWithError(node)
}

func (c nodeContainer) ReplaceChild(node, old *dom.Node) (*dom.Node, error) {
	return c.n.ReplaceChildWithError(node, old)
}

// getGoNode extracts the Go *dom.Node from a JavaScript object.
func (b *DOMBinder) getGoNode(obj *goja.Object) *dom.Node {
	if obj == nil {
		return nil
	}
	if v := obj.Get("_goNode"); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
		if node, ok := v.Export().(*dom.Node); ok {
			return node
		}
	}
	return nil
}

// nodeArg returns argument i as a node or throws a TypeError.
func (b *DOMBinder) nodeArg(call goja.FunctionCall, i int, method string) *dom.Node {
	vm := b.runtime.vm
	if len(call.Arguments) <= i || goja.IsNull(call.Arguments[i]) || goja.IsUndefined(call.Arguments[i]) {
		panic(vm.NewTypeError("Failed to execute '" + method + "' on 'Node': parameter is not of type 'Node'."))
	}
	node := b.getGoNode(call.Arguments[i].ToObject(vm))
	if node == nil {
		panic(vm.NewTypeError("Failed to execute '" + method + "' on 'Node': parameter is not of type 'Node'."))
	}
	return node
}

// elementArg returns the first argument as an element or throws a TypeError.
func (b *DOMBinder) elementArg(call goja.FunctionCall, fn string) *dom.Element {
	vm := b.runtime.vm
	if len(call.Arguments) < 1 || goja.IsNull(call.Arguments[0]) || goja.IsUndefined(call.Arguments[0]) {
		panic(vm.NewTypeError("Failed to execute '" + fn + "': parameter 1 is not of type 'Element'."))
	}
	el := b.getGoNode(call.Arguments[0].ToObject(vm)).AsElement()
	if el == nil {
		panic(vm.NewTypeError("Failed to execute '" + fn + "': parameter 1 is not of type 'Element'."))
	}
	return el
}

func stringArg(call goja.FunctionCall, i int) string {
	if len(call.Arguments) <= i {
		return ""
	}
	return call.Arguments[i].String()
}

func (b *DOMBinder) nodeOrNull(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return b.BindNode(node)
}

func (b *DOMBinder) elementOrNull(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.BindElement(el)
}

// createDOMException creates a DOMException through the global constructor
// so instanceof DOMException holds.
func (b *DOMBinder) createDOMException(name, message string) *goja.Object {
	vm := b.runtime.vm
	if ctor, ok := goja.AssertConstructor(vm.Get("DOMException")); ok {
		if exc, err := ctor(nil, vm.ToValue(message), vm.ToValue(name)); err == nil {
			return exc
		}
	}
	exc := vm.NewObject()
	exc.Set("name", name)
	exc.Set("message", message)
	exc.Set("code", domExceptionCode(name))
	return exc
}

// throwError throws err into the script: a DOMException for DOM errors, a
// Go error otherwise.
func (b *DOMBinder) throwError(err error) {
	vm := b.runtime.vm
	if domErr, ok := err.(*dom.DOMError); ok {
		panic(vm.ToValue(b.createDOMException(domErr.Name, domErr.Message)))
	}
	panic(vm.NewGoError(err))
}

// ClearCache drops every cached JS object.
func (b *DOMBinder) ClearCache() {
	b.nodeMap = make(map[*dom.Node]*goja.Object)
}
