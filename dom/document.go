package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Body returns the body element of the document.
func (d *Document) Body() *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for child := root.AsNode().firstChild; child != nil; child = child.nextSibling {
		if el := child.AsElement(); el != nil && el.LocalName() == "body" {
			return el
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
// This method ignores errors. Use CreateElementWithError for proper error handling.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element with the given tag name.
// Returns an InvalidCharacterError if the tag name is not a valid name.
// https://dom.spec.whatwg.org/#dom-document-createelement
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	return d.newElement(tagName), nil
}

// newElement creates an element without checking the name. The HTML parser
// accepts tag names that createElement rejects, such as "a@b".
func (d *Document) newElement(tagName string) *Element {
	node := newNode(ElementNode, strings.ToUpper(tagName), d)
	node.elementData = &elementData{
		localName: strings.ToLower(tagName),
		tagName:   strings.ToUpper(tagName),
	}
	return (*Element)(node)
}

// isValidName reports whether name can be used as an element name.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.data = data
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.data = data
	return node
}

// CreateDocumentFragment creates a new empty document fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", d)
	return (*DocumentFragment)(node)
}

// GetElementById returns the first element with the given id.
func (d *Document) GetElementById(id string) *Element {
	nodes := collectFunc(d.AsNode(), func(el *Element) bool { return el.Id() == id }, true)
	if len(nodes) == 0 {
		return nil
	}
	return (*Element)(nodes[0])
}

// QuerySelector returns the first element matching the selector.
func (d *Document) QuerySelector(selector string) *Element {
	return querySelector(d.AsNode(), selector)
}

// QuerySelectorAll returns all elements matching the selector.
func (d *Document) QuerySelectorAll(selector string) *NodeList {
	return querySelectorAll(d.AsNode(), selector)
}

// ParseHTML parses an HTML string and returns a Document.
func ParseHTML(htmlContent string) (*Document, error) {
	doc := NewDocument()

	netDoc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	for c := netDoc.FirstChild; c != nil; c = c.NextSibling {
		if node := convertHTMLNode(c, doc); node != nil {
			doc.AsNode().insertBeforeInternal(node, nil)
		}
	}
	return doc, nil
}
