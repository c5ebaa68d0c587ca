package dom

// EachChildNode calls fn for each child of node in forward order. It stops
// at the first call returning a non-nil value and returns that value.
// A nil node visits nothing.
func EachChildNode(node *Node, fn func(child *Node, index int) any) any {
	if node == nil {
		return nil
	}
	index := 0
	for child := node.firstChild; child != nil; {
		// fn may move child elsewhere
		next := child.nextSibling
		if v := fn(child, index); v != nil {
			return v
		}
		child = next
		index++
	}
	return nil
}

// EachNodeOrFragmentNodes calls fn once for node with index 0, or, when node
// is a document fragment, for each of its children. Fragment children are
// snapshotted first and visited last to first, each with its original
// forward index, so fn may relocate them freely.
func EachNodeOrFragmentNodes(node *Node, fn func(n *Node, index int)) {
	if node == nil {
		return
	}
	if node.nodeType != DocumentFragmentNode {
		fn(node, 0)
		return
	}
	children := node.ChildNodes().Slice()
	for i := len(children) - 1; i >= 0; i-- {
		fn(children[i], i)
	}
}
