package treeview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	// ErrProviderRequired rejects view construction without a data provider.
	ErrProviderRequired = errors.New("data provider required")
	// ErrCapabilityMissing rejects operations needing an optional provider
	// capability the bound provider does not implement.
	ErrCapabilityMissing = errors.New("data provider capability missing")
	// ErrViewDisposed rejects operations against a disposed view.
	ErrViewDisposed = errors.New("tree view disposed")
)

// Options configures a tree view at construction time.
type Options struct {
	Provider  DataProvider
	Decorator ItemDecorator
	Proxy     Proxy
	Logger    *log.Logger
}

// TreeView keeps one host panel's cached picture of a provider's tree in
// sync. It materializes nodes lazily on child fetch, resolves ancestor
// chains for reveal, batches refresh notifications, and routes checkbox
// changes back to the provider, always addressing nodes by handle.
//
// All operations serialize on one mutex, held across provider calls: the
// cache is the single coordination point, so overlapping fetch/refresh
// sequences observe each other's completed state, never a half-applied one.
// Providers must not call back into their own view.
type TreeView struct {
	handle      int
	componentID string
	provider    DataProvider
	decorate    ItemDecorator
	proxy       Proxy
	logger      *log.Logger

	mu       sync.Mutex
	cache    *nodeCache
	disposed bool
}

// NewTreeView builds an active tree view bound to opts.Provider.
func NewTreeView(handle int, componentID string, opts Options) (*TreeView, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("tree view %d-%s: %w", handle, componentID, ErrProviderRequired)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &TreeView{
		handle:      handle,
		componentID: componentID,
		provider:    opts.Provider,
		decorate:    opts.Decorator,
		proxy:       opts.Proxy,
		logger:      logger,
		cache:       newNodeCache(),
	}, nil
}

func (v *TreeView) id() string {
	return fmt.Sprintf("%d-%s", v.handle, v.componentID)
}

// ComponentID reports the component this view renders into.
func (v *TreeView) ComponentID() string { return v.componentID }

// GetChildren enumerates the children of the node identified by handle, or
// the roots when handle is empty. Returned elements are materialized into
// the cache (new handle, or in-place item update for elements already
// cached) and come back as display items. A non-empty handle absent from the
// cache is an error for the caller, not a crash.
func (v *TreeView) GetChildren(ctx context.Context, handle TreeItemHandle) ([]ComponentItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return nil, fmt.Errorf("tree view %s: %w", v.id(), ErrViewDisposed)
	}

	var parent *treeNode
	var element Element
	if handle != "" {
		parent = v.cache.get(handle)
		if parent == nil {
			return nil, fmt.Errorf("tree view %s: no cached node for handle %q", v.id(), handle)
		}
		element = parent.element
	}

	children, err := v.provider.GetChildren(ctx, element)
	if err != nil {
		return nil, fmt.Errorf("tree view %s: get children: %w", v.id(), err)
	}

	handles := make([]TreeItemHandle, 0, len(children))
	items := make([]ComponentItem, 0, len(children))
	for _, child := range children {
		node, err := v.materialize(ctx, child, parent)
		if err != nil {
			return nil, err
		}
		handles = append(handles, node.item.Handle)
		items = append(items, node.item)
	}

	// Children the provider no longer reports take their subtrees with them.
	previous := v.cache.roots
	if parent != nil {
		previous = parent.children
	}
	for _, old := range previous {
		if !containsHandle(handles, old) {
			v.cache.removeSubtree(old)
		}
	}
	if parent != nil {
		parent.children = handles
	} else {
		v.cache.roots = handles
	}
	return items, nil
}

// Reveal guarantees that element's full ancestor chain is materialized in
// the cache and addressable by handle. It requires the provider to support
// parent lookup. The host performs the actual scroll and selection; the
// selectNode flag only travels with the host's follow-up, never changes what
// this method does to the cache.
func (v *TreeView) Reveal(ctx context.Context, element Element, selectNode bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return fmt.Errorf("tree view %s: %w", v.id(), ErrViewDisposed)
	}
	parents, ok := v.provider.(ParentProvider)
	if !ok {
		return fmt.Errorf("tree view %s: reveal needs parent lookup: %w", v.id(), ErrCapabilityMissing)
	}

	// Walk up to the root, nearest ancestor first.
	var chain []Element
	current := element
	for {
		parent, err := parents.GetParent(ctx, current)
		if err != nil {
			return fmt.Errorf("tree view %s: resolve parent chain: %w", v.id(), err)
		}
		if parent == nil {
			break
		}
		chain = append(chain, parent)
		current = parent
	}

	// Materialize top-down so every parent link exists before its children.
	var parentNode *treeNode
	for i := len(chain) - 1; i >= 0; i-- {
		node, err := v.materialize(ctx, chain[i], parentNode)
		if err != nil {
			return err
		}
		parentNode = node
	}
	_, err := v.materialize(ctx, element, parentNode)
	return err
}

// OnNodeCheckedChanged resolves the handle back to its element and forwards
// the new checked state to the provider. A handle the cache no longer knows
// is logged and forwarded with a nil element; it never fails the call.
func (v *TreeView) OnNodeCheckedChanged(ctx context.Context, handle TreeItemHandle, checked bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return fmt.Errorf("tree view %s: %w", v.id(), ErrViewDisposed)
	}
	var element Element
	if node := v.cache.get(handle); node != nil {
		element = node.element
		node.item.Checked = checked
	} else {
		v.logger.Printf("tree view %s: checked change for unknown handle %q", v.id(), handle)
	}
	if handler, ok := v.provider.(CheckStateHandler); ok {
		if err := handler.OnNodeCheckedChanged(ctx, element, checked); err != nil {
			v.logger.Printf("tree view %s: check state handler: %v", v.id(), err)
		}
	}
	return nil
}

// Refresh re-projects the given elements and pushes the surviving
// handle->item batch to the host in a single call. A nil element anywhere in
// the batch means root refresh: the whole cache is cleared and the host is
// asked to redraw everything. Elements without a cached handle are dropped
// silently; an all-dropped batch sends nothing.
func (v *TreeView) Refresh(ctx context.Context, elements []Element) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return fmt.Errorf("tree view %s: %w", v.id(), ErrViewDisposed)
	}
	for _, element := range elements {
		if element == nil {
			v.cache.clearAll()
			return v.notifyRefresh(ctx, nil)
		}
	}

	items := make(map[TreeItemHandle]ComponentItem)
	for _, element := range elements {
		handle, ok := v.cache.handleFor(element)
		if !ok {
			continue
		}
		item, err := v.projectItem(ctx, element)
		if err != nil {
			v.logger.Printf("tree view %s: refresh %q: %v", v.id(), handle, err)
			continue
		}
		node := v.cache.update(item, v.cache.get(handle))
		// Last write per handle wins inside one batch.
		items[handle] = node.item
	}
	if len(items) == 0 {
		return nil
	}
	return v.notifyRefresh(ctx, items)
}

// Dispose tears the view down. Disposal is terminal: the cache empties and
// every later operation fails with ErrViewDisposed.
func (v *TreeView) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	v.disposed = true
	v.cache.clearAll()
}

// CachedItem returns the current display item for a handle, if cached.
func (v *TreeView) CachedItem(handle TreeItemHandle) (ComponentItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	node := v.cache.get(handle)
	if node == nil {
		return ComponentItem{}, false
	}
	return node.item, true
}

// HandleFor returns the handle currently assigned to element, if cached.
func (v *TreeView) HandleFor(element Element) (TreeItemHandle, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cache.handleFor(element)
}

// CachedCount reports how many nodes the cache currently holds.
func (v *TreeView) CachedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cache.size()
}

func (v *TreeView) notifyRefresh(ctx context.Context, items map[TreeItemHandle]ComponentItem) error {
	if v.proxy == nil {
		return nil
	}
	return v.proxy.RefreshDataProvider(ctx, v.handle, v.componentID, items)
}

// materialize ensures element has a cache node: existing nodes get their
// item re-projected in place (handle and parent preserved), new elements are
// inserted under parent with a fresh handle.
func (v *TreeView) materialize(ctx context.Context, element Element, parent *treeNode) (*treeNode, error) {
	item, err := v.projectItem(ctx, element)
	if err != nil {
		return nil, err
	}
	if handle, ok := v.cache.handleFor(element); ok {
		return v.cache.update(item, v.cache.get(handle)), nil
	}
	return v.cache.insert(element, item, parent), nil
}

func (v *TreeView) projectItem(ctx context.Context, element Element) (ComponentItem, error) {
	var item ComponentItem
	if provider, ok := v.provider.(ItemProvider); ok {
		projected, err := provider.GetTreeItem(ctx, element)
		if err != nil {
			return ComponentItem{}, fmt.Errorf("tree view %s: get tree item: %w", v.id(), err)
		}
		item = projected
	} else {
		item = ComponentItem{Label: fmt.Sprint(element), Enabled: true}
	}
	if v.decorate != nil {
		v.decorate(element, &item)
	}
	return item, nil
}

func containsHandle(handles []TreeItemHandle, handle TreeItemHandle) bool {
	for _, h := range handles {
		if h == handle {
			return true
		}
	}
	return false
}
