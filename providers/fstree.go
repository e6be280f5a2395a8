package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

// FSTreeProvider exposes a directory tree as checkable tree-view data.
// Elements are cleaned absolute paths, which keeps them comparable and makes
// parent lookup a pure path operation. Checked paths form an in-memory
// selection set.
type FSTreeProvider struct {
	root string

	mu      sync.Mutex
	checked map[string]bool
}

// NewFSTreeProvider builds a provider rooted at dir.
func NewFSTreeProvider(dir string) (*FSTreeProvider, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fs tree root %s is not a directory", abs)
	}
	return &FSTreeProvider{root: abs, checked: make(map[string]bool)}, nil
}

// Root returns the provider's root path.
func (p *FSTreeProvider) Root() string { return p.root }

// GetChildren lists the entries under element, or the root itself when
// element is nil. Directories sort before files.
func (p *FSTreeProvider) GetChildren(ctx context.Context, element treeview.Element) ([]treeview.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if element == nil {
		return []treeview.Element{p.root}, nil
	}
	path, ok := element.(string)
	if !ok {
		return nil, fmt.Errorf("fs tree: unexpected element %T", element)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	children := make([]treeview.Element, 0, len(entries))
	for _, entry := range entries {
		children = append(children, filepath.Join(path, entry.Name()))
	}
	return children, nil
}

// GetTreeItem projects a path into a display item.
func (p *FSTreeProvider) GetTreeItem(ctx context.Context, element treeview.Element) (treeview.ComponentItem, error) {
	path, ok := element.(string)
	if !ok {
		return treeview.ComponentItem{}, fmt.Errorf("fs tree: unexpected element %T", element)
	}
	item := treeview.ComponentItem{
		Label:     filepath.Base(path),
		Tooltip:   path,
		Checkable: true,
		Enabled:   true,
	}
	p.mu.Lock()
	item.Checked = p.checked[path]
	p.mu.Unlock()
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		item.Icon = "folder"
		item.CollapsibleState = treeview.CollapsibleStateCollapsed
	} else {
		item.Icon = "file"
	}
	return item, nil
}

// GetParent resolves a path's parent directory; the root has none.
func (p *FSTreeProvider) GetParent(ctx context.Context, element treeview.Element) (treeview.Element, error) {
	path, ok := element.(string)
	if !ok {
		return nil, fmt.Errorf("fs tree: unexpected element %T", element)
	}
	if path == p.root {
		return nil, nil
	}
	parent := filepath.Dir(path)
	if len(parent) < len(p.root) {
		return nil, fmt.Errorf("fs tree: %s is outside the root", path)
	}
	return parent, nil
}

// OnNodeCheckedChanged records the path in the selection set. A nil element
// (stale handle on the host side) is ignored.
func (p *FSTreeProvider) OnNodeCheckedChanged(ctx context.Context, element treeview.Element, checked bool) error {
	path, ok := element.(string)
	if !ok {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if checked {
		p.checked[path] = true
	} else {
		delete(p.checked, path)
	}
	return nil
}

// CheckedPaths returns the current selection set, sorted.
func (p *FSTreeProvider) CheckedPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	paths := make([]string, 0, len(p.checked))
	for path := range p.checked {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
