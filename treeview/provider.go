package treeview

import "context"

// Element is an opaque, provider-defined value identifying a logical tree
// item. Elements must be comparable (strings, pointers, comparable structs):
// the cache keeps a reverse index keyed by element.
type Element interface{}

// DataProvider enumerates the children of tree elements on demand. A nil
// element asks for the roots. This is the only required capability; the
// optional ones below are discovered by interface assertion.
type DataProvider interface {
	GetChildren(ctx context.Context, element Element) ([]Element, error)
}

// ItemProvider customizes the display projection of an element. Providers
// that skip it get the default projection: fmt.Sprint label, leaf node.
type ItemProvider interface {
	GetTreeItem(ctx context.Context, element Element) (ComponentItem, error)
}

// ParentProvider exposes ancestor lookup. Reveal requires it; a nil parent
// marks a root element.
type ParentProvider interface {
	GetParent(ctx context.Context, element Element) (Element, error)
}

// CheckStateHandler receives checkbox toggles forwarded from the host. The
// element may be nil when the host reports a handle the cache no longer
// knows about.
type CheckStateHandler interface {
	OnNodeCheckedChanged(ctx context.Context, element Element, checked bool) error
}

// ItemDecorator augments the base projection of an element after the
// provider (or the default) produced it. This is how element-specific fields
// such as checked state are layered on without touching cache mechanics.
type ItemDecorator func(element Element, item *ComponentItem)

// Proxy is the outbound half of the host connection. A nil items map asks
// the host to redraw the whole tree.
type Proxy interface {
	RefreshDataProvider(ctx context.Context, handle int, componentID string, items map[TreeItemHandle]ComponentItem) error
}
