package dom

// DocumentFragment represents a minimal document object that has no parent.
// Inserting a fragment moves its children into the target and leaves it empty.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (df *DocumentFragment) AsNode() *Node {
	return (*Node)(df)
}

// NodeType returns DocumentFragmentNode (11).
func (df *DocumentFragment) NodeType() NodeType {
	return DocumentFragmentNode
}

// ChildElementCount returns the number of child elements.
func (df *DocumentFragment) ChildElementCount() int {
	count := 0
	for child := df.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// AppendChild moves node to the end of the fragment.
func (df *DocumentFragment) AppendChild(node *Node) (*Node, error) {
	return df.AsNode().AppendChildWithError(node)
}
