package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element represents an element in the DOM tree.
// Element inherits from Node and provides element-specific properties and methods.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the local name of the element in lowercase.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// ClassList returns the whitespace separated tokens of the class attribute.
func (e *Element) ClassList() []string {
	return strings.Fields(e.GetAttribute("class"))
}

// Attributes returns a copy of the element's attributes in source order.
func (e *Element) Attributes() []Attr {
	return append([]Attr(nil), e.elementData.attributes...)
}

// GetAttribute returns the value of the attribute with the given name,
// or the empty string if it is absent. Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	if i := e.attrIndex(name); i >= 0 {
		return e.elementData.attributes[i].Value
	}
	return ""
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.attrIndex(name) >= 0
}

// SetAttribute sets the value of the named attribute, adding it if absent.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	if i := e.attrIndex(name); i >= 0 {
		e.elementData.attributes[i].Value = value
		return
	}
	e.elementData.attributes = append(e.elementData.attributes, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	if i := e.attrIndex(name); i >= 0 {
		attrs := e.elementData.attributes
		e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)
	}
}

func (e *Element) attrIndex(name string) int {
	name = strings.ToLower(name)
	for i, attr := range e.elementData.attributes {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

// Children returns a static list of the child elements.
func (e *Element) Children() *NodeList {
	var nodes []*Node
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			nodes = append(nodes, child)
		}
	}
	return NewStaticNodeList(nodes)
}

// ChildElementCount returns the number of child elements.
func (e *Element) ChildElementCount() int {
	return e.Children().Length()
}

// FirstElementChild returns the first child element.
func (e *Element) FirstElementChild() *Element {
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child element.
func (e *Element) LastElementChild() *Element {
	for child := e.AsNode().lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling element.
func (e *Element) PreviousElementSibling() *Element {
	for sib := e.AsNode().prevSibling; sib != nil; sib = sib.prevSibling {
		if sib.nodeType == ElementNode {
			return (*Element)(sib)
		}
	}
	return nil
}

// NextElementSibling returns the next sibling element.
func (e *Element) NextElementSibling() *Element {
	for sib := e.AsNode().nextSibling; sib != nil; sib = sib.nextSibling {
		if sib.nodeType == ElementNode {
			return (*Element)(sib)
		}
	}
	return nil
}

// QuerySelector returns the first descendant element matching the selector.
func (e *Element) QuerySelector(selector string) *Element {
	return querySelector(e.AsNode(), selector)
}

// QuerySelectorAll returns all descendant elements matching the selector.
func (e *Element) QuerySelectorAll(selector string) *NodeList {
	return querySelectorAll(e.AsNode(), selector)
}

// QueryAttribute returns every descendant element whose attribute name
// equals value exactly, in document order. Unlike QuerySelectorAll the
// value is never parsed, so it may hold any character.
func (e *Element) QueryAttribute(name, value string) []*Element {
	var results []*Element
	for _, node := range collectFunc(e.AsNode(), func(el *Element) bool {
		return el.HasAttribute(name) && el.GetAttribute(name) == value
	}, false) {
		results = append(results, (*Element)(node))
	}
	return results
}

func querySelector(root *Node, selector string) *Element {
	results := collectMatches(root, selector, true)
	if len(results) > 0 {
		return (*Element)(results[0])
	}
	return nil
}

func querySelectorAll(root *Node, selector string) *NodeList {
	return NewStaticNodeList(collectMatches(root, selector, false))
}

func collectMatches(root *Node, selector string, firstOnly bool) []*Node {
	return collectFunc(root, func(el *Element) bool { return el.Matches(selector) }, firstOnly)
}

// collectFunc walks the descendants of root in document order.
func collectFunc(root *Node, match func(*Element) bool, firstOnly bool) []*Node {
	var results []*Node
	var walk func(node *Node) bool
	walk = func(node *Node) bool {
		for child := node.firstChild; child != nil; child = child.nextSibling {
			if child.nodeType != ElementNode {
				continue
			}
			if match((*Element)(child)) {
				results = append(results, child)
				if firstOnly {
					return true
				}
			}
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return results
}

// Matches returns true if the element matches the given selector.
// Supported are comma separated compound selectors made of a tag name,
// #id, .class and attribute selectors.
func (e *Element) Matches(selector string) bool {
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if part != "" && e.matchesCompoundSelector(part) {
			return true
		}
	}
	return false
}

func (e *Element) matchesCompoundSelector(selector string) bool {
	current := selector
	tagName := current

	idx := strings.IndexAny(current, ".#[")
	switch {
	case idx == 0:
		tagName = "*"
	case idx > 0:
		tagName = current[:idx]
		current = current[idx:]
	default:
		current = ""
	}

	if tagName != "*" && !strings.EqualFold(e.LocalName(), tagName) {
		return false
	}

	for len(current) > 0 {
		switch marker := current[0]; marker {
		case '.', '#':
			end := strings.IndexAny(current[1:], ".#[")
			var name string
			if end == -1 {
				name = current[1:]
				current = ""
			} else {
				name = current[1 : end+1]
				current = current[end+1:]
			}
			if name == "" {
				return false
			}
			if marker == '#' && e.Id() != name {
				return false
			}
			if marker == '.' && !e.hasClass(name) {
				return false
			}
		case '[':
			end := strings.Index(current, "]")
			if end == -1 {
				return false
			}
			attrSelector := current[1:end]
			current = current[end+1:]
			if !e.matchesAttributeSelector(attrSelector) {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func (e *Element) hasClass(name string) bool {
	for _, class := range e.ClassList() {
		if class == name {
			return true
		}
	}
	return false
}

func (e *Element) matchesAttributeSelector(selector string) bool {
	eq := strings.IndexByte(selector, '=')
	if eq == -1 {
		return e.HasAttribute(strings.TrimSpace(selector))
	}

	attrName := selector[:eq]
	value := strings.Trim(strings.TrimSpace(selector[eq+1:]), "\"'")
	op := "="
	if eq > 0 && strings.ContainsRune("~|^$*", rune(selector[eq-1])) {
		op = selector[eq-1 : eq+1]
		attrName = selector[:eq-1]
	}
	attrName = strings.TrimSpace(attrName)

	if !e.HasAttribute(attrName) {
		return false
	}
	attrValue := e.GetAttribute(attrName)

	switch op {
	case "=":
		return attrValue == value
	case "~=":
		for _, word := range strings.Fields(attrValue) {
			if word == value {
				return true
			}
		}
		return false
	case "|=":
		return attrValue == value || strings.HasPrefix(attrValue, value+"-")
	case "^=":
		return value != "" && strings.HasPrefix(attrValue, value)
	case "$=":
		return value != "" && strings.HasSuffix(attrValue, value)
	case "*=":
		return value != "" && strings.Contains(attrValue, value)
	}
	return false
}

// InnerHTML returns the HTML serialization of the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the element's children with the parsed markup.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := ParseFragment(htmlContent, e)
	if err != nil {
		return err
	}

	n := e.AsNode()
	for n.firstChild != nil {
		n.removeChildInternal(n.firstChild)
	}
	for _, node := range nodes {
		n.insertBeforeInternal(node, nil)
	}
	return nil
}

// OuterHTML returns the HTML of the element including the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb)
	return sb.String()
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent sets the text content of the element.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// serializeNode serializes a node to HTML.
func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		sb.WriteString(html.EscapeString(n.data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.data)
		sb.WriteString("-->")
	case ElementNode:
		el := (*Element)(n)
		tagName := el.LocalName()
		sb.WriteString("<")
		sb.WriteString(tagName)

		for _, attr := range el.elementData.attributes {
			sb.WriteString(" ")
			sb.WriteString(attr.Name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.Value))
			sb.WriteString("\"")
		}
		sb.WriteString(">")

		if isVoidElement(tagName) {
			return
		}

		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}

		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentFragmentNode, DocumentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	}
}

// isVoidElement returns true if the element is a void element.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// ParseFragment parses markup in the context of an element and returns the
// resulting top-level nodes, owned by the context's document and detached.
func ParseFragment(htmlContent string, context *Element) ([]*Node, error) {
	if htmlContent == "" {
		return nil, nil
	}

	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	doc := context.AsNode().ownerDoc
	result := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if node := convertHTMLNode(n, doc); node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

// convertHTMLNode converts an html.Node subtree to a dom.Node subtree.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node

	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.ElementNode:
		el := doc.newElement(n.Data)
		for _, attr := range n.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + attr.Key
			}
			el.SetAttribute(key, attr.Val)
		}
		node = el.AsNode()
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	case html.DoctypeNode:
		node = newNode(DocumentTypeNode, n.Data, doc)
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertHTMLNode(c, doc); child != nil {
			node.insertBeforeInternal(child, nil)
		}
	}

	return node
}
