package exthost

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// TreeViewOptions carries everything needed to bind a view to a component.
type TreeViewOptions struct {
	Provider  treeview.DataProvider
	Decorator treeview.ItemDecorator
}

// TreeViewManager registers tree view bridges for later host-initiated
// calls, keyed by the handle/componentId composite the host addresses them
// with. Each view owns its cache exclusively; the manager only routes.
type TreeViewManager struct {
	proxy  treeview.Proxy
	logger *log.Logger

	mu    sync.RWMutex
	views map[string]*treeview.TreeView
}

// NewTreeViewManager builds a manager pushing refresh notifications through
// proxy. A nil logger falls back to log.Default.
func NewTreeViewManager(proxy treeview.Proxy, logger *log.Logger) *TreeViewManager {
	if logger == nil {
		logger = log.Default()
	}
	return &TreeViewManager{
		proxy:  proxy,
		logger: logger,
		views:  make(map[string]*treeview.TreeView),
	}
}

// ViewKey builds the composite id the host uses to address a view.
func ViewKey(handle int, componentID string) string {
	return fmt.Sprintf("%d-%s", handle, componentID)
}

// CreateTreeView constructs a bridge for the component and registers it. A
// missing data provider is an invalid argument, not a late failure.
func (m *TreeViewManager) CreateTreeView(handle int, componentID string, opts TreeViewOptions) (*treeview.TreeView, error) {
	key := ViewKey(handle, componentID)
	if opts.Provider == nil {
		return nil, fmt.Errorf("%w: tree view %s requires a data provider", ErrInvalidArgument, key)
	}
	view, err := treeview.NewTreeView(handle, componentID, treeview.Options{
		Provider:  opts.Provider,
		Decorator: opts.Decorator,
		Proxy:     m.proxy,
		Logger:    m.logger,
	})
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.views[key]; ok {
		old.Dispose()
	}
	m.views[key] = view
	return view, nil
}

// View resolves a registered view by composite id.
func (m *TreeViewManager) View(viewID string) (*treeview.TreeView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	view, ok := m.views[viewID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, viewID)
	}
	return view, nil
}

// GetChildren is the host-initiated child fetch for a registered view.
func (m *TreeViewManager) GetChildren(ctx context.Context, viewID string, handle treeview.TreeItemHandle) ([]treeview.ComponentItem, error) {
	view, err := m.View(viewID)
	if err != nil {
		return nil, err
	}
	return view.GetChildren(ctx, handle)
}

// OnNodeCheckedChanged routes a host checkbox toggle to a registered view.
func (m *TreeViewManager) OnNodeCheckedChanged(ctx context.Context, viewID string, handle treeview.TreeItemHandle, checked bool) error {
	view, err := m.View(viewID)
	if err != nil {
		return err
	}
	return view.OnNodeCheckedChanged(ctx, handle, checked)
}

// DisposeTreeView disposes and unregisters a view. Unknown ids are a no-op:
// disposal must be idempotent from the host's point of view.
func (m *TreeViewManager) DisposeTreeView(viewID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if view, ok := m.views[viewID]; ok {
		view.Dispose()
		delete(m.views, viewID)
	}
}

// DisposeAll tears down every registered view.
func (m *TreeViewManager) DisposeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, view := range m.views {
		view.Dispose()
		delete(m.views, id)
	}
}
