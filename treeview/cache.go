package treeview

import "strconv"

// treeNode is the cache-internal record for one revealed element. Nodes are
// owned exclusively by the cache and never escape the package.
type treeNode struct {
	element Element
	parent  *treeNode
	item    ComponentItem
	// children holds the handles reported by the last child fetch, in
	// display order. Nil until the node's children are first enumerated.
	children []TreeItemHandle
}

// nodeCache is the single source of truth mapping handles, elements, and
// nodes for one tree view. It maintains a bijection: every live handle maps
// to exactly one element and back. Handle allocation is a monotonic counter,
// so a handle is never reissued for a different element within one view's
// lifetime, even across clearAll.
type nodeCache struct {
	nextHandle uint64
	nodes      map[TreeItemHandle]*treeNode
	elements   map[Element]TreeItemHandle
	roots      []TreeItemHandle
}

func newNodeCache() *nodeCache {
	return &nodeCache{
		nodes:    make(map[TreeItemHandle]*treeNode),
		elements: make(map[Element]TreeItemHandle),
	}
}

func (c *nodeCache) allocHandle() TreeItemHandle {
	c.nextHandle++
	return TreeItemHandle(strconv.FormatUint(c.nextHandle, 10))
}

func (c *nodeCache) get(handle TreeItemHandle) *treeNode {
	return c.nodes[handle]
}

func (c *nodeCache) handleFor(element Element) (TreeItemHandle, bool) {
	handle, ok := c.elements[element]
	return handle, ok
}

// insert allocates a fresh handle for element and stores the node in both
// indices. Callers check handleFor first; inserting an element that is
// already cached would break the bijection.
func (c *nodeCache) insert(element Element, item ComponentItem, parent *treeNode) *treeNode {
	handle := c.allocHandle()
	item.Handle = handle
	node := &treeNode{element: element, parent: parent, item: item}
	c.nodes[handle] = node
	c.elements[element] = handle
	return node
}

// update swaps the display item in place. The handle and the parent pointer
// survive: refreshing a node never reparents it.
func (c *nodeCache) update(item ComponentItem, node *treeNode) *treeNode {
	item.Handle = node.item.Handle
	node.item = item
	return node
}

// invalidateSubtree removes the element's node and, transitively, every
// descendant reachable through the children sets, from both indices.
func (c *nodeCache) invalidateSubtree(element Element) {
	if handle, ok := c.elements[element]; ok {
		c.removeSubtree(handle)
	}
}

func (c *nodeCache) removeSubtree(handle TreeItemHandle) {
	node, ok := c.nodes[handle]
	if !ok {
		return
	}
	for _, child := range node.children {
		c.removeSubtree(child)
	}
	delete(c.nodes, handle)
	delete(c.elements, node.element)
}

// clearAll empties both indices. The handle counter is deliberately left
// alone so handles stay unique across a root-level refresh.
func (c *nodeCache) clearAll() {
	c.nodes = make(map[TreeItemHandle]*treeNode)
	c.elements = make(map[Element]TreeItemHandle)
	c.roots = nil
}

func (c *nodeCache) size() int {
	return len(c.nodes)
}
