package dom

// NodeList represents a collection of nodes. It can be either live (automatically
// updated when the DOM changes) or static (a snapshot at a point in time).
type NodeList struct {
	// For live NodeLists, this is the parent node
	parent *Node

	// For static NodeLists, this holds the nodes
	staticNodes []*Node

	isLive bool
}

// newNodeList creates a new live NodeList for the given parent node.
func newNodeList(parent *Node) *NodeList {
	return &NodeList{
		parent: parent,
		isLive: true,
	}
}

// NewStaticNodeList creates a new static NodeList from a slice of nodes.
func NewStaticNodeList(nodes []*Node) *NodeList {
	staticCopy := make([]*Node, len(nodes))
	copy(staticCopy, nodes)
	return &NodeList{
		staticNodes: staticCopy,
	}
}

// Length returns the number of nodes in the collection.
func (nl *NodeList) Length() int {
	if nl.isLive {
		count := 0
		for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
			count++
		}
		return count
	}
	return len(nl.staticNodes)
}

// Item returns the node at the given index, or nil if the index is out of bounds.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 {
		return nil
	}

	if nl.isLive {
		i := 0
		for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
			if i == index {
				return child
			}
			i++
		}
		return nil
	}

	if index >= len(nl.staticNodes) {
		return nil
	}
	return nl.staticNodes[index]
}

// IndexOf returns the position of node in the collection, or -1.
func (nl *NodeList) IndexOf(node *Node) int {
	for i, n := range nl.Slice() {
		if n == node {
			return i
		}
	}
	return -1
}

// ForEach calls the given function for each node in the collection.
func (nl *NodeList) ForEach(fn func(node *Node, index int)) {
	for i, node := range nl.Slice() {
		fn(node, i)
	}
}

// Slice returns the nodes of the collection as a new slice.
func (nl *NodeList) Slice() []*Node {
	if !nl.isLive {
		return append([]*Node(nil), nl.staticNodes...)
	}
	var nodes []*Node
	for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
		nodes = append(nodes, child)
	}
	return nodes
}
