package exthost

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

type staticProvider struct {
	roots []string
}

func (p staticProvider) GetChildren(ctx context.Context, element treeview.Element) ([]treeview.Element, error) {
	if element != nil {
		return nil, nil
	}
	out := make([]treeview.Element, 0, len(p.roots))
	for _, root := range p.roots {
		out = append(out, root)
	}
	return out, nil
}

func newTestManager() *TreeViewManager {
	return NewTreeViewManager(nil, log.New(io.Discard, "", 0))
}

func TestCreateTreeViewRequiresProvider(t *testing.T) {
	m := newTestManager()
	_, err := m.CreateTreeView(3, "grid", TreeViewOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "3-grid")
}

func TestCreateAndGetChildren(t *testing.T) {
	m := newTestManager()
	_, err := m.CreateTreeView(0, "explorer", TreeViewOptions{Provider: staticProvider{roots: []string{"x", "y"}}})
	require.NoError(t, err)

	items, err := m.GetChildren(context.Background(), ViewKey(0, "explorer"), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "x", items[0].Label)
}

func TestGetChildrenUnregisteredView(t *testing.T) {
	m := newTestManager()
	_, err := m.GetChildren(context.Background(), "v1", "")
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.ErrorContains(t, err, "v1")
}

func TestOnNodeCheckedChangedUnregisteredView(t *testing.T) {
	m := newTestManager()
	err := m.OnNodeCheckedChanged(context.Background(), "v1", "7", true)
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.ErrorContains(t, err, "v1")
}

func TestCreateTreeViewReplacesExisting(t *testing.T) {
	m := newTestManager()
	first, err := m.CreateTreeView(0, "explorer", TreeViewOptions{Provider: staticProvider{roots: []string{"x"}}})
	require.NoError(t, err)
	_, err = first.GetChildren(context.Background(), "")
	require.NoError(t, err)

	_, err = m.CreateTreeView(0, "explorer", TreeViewOptions{Provider: staticProvider{roots: []string{"y"}}})
	require.NoError(t, err)

	// The replaced view is disposed; the registered one serves the new data.
	_, err = first.GetChildren(context.Background(), "")
	assert.ErrorIs(t, err, treeview.ErrViewDisposed)
	items, err := m.GetChildren(context.Background(), ViewKey(0, "explorer"), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "y", items[0].Label)
}

func TestDisposeTreeView(t *testing.T) {
	m := newTestManager()
	_, err := m.CreateTreeView(0, "explorer", TreeViewOptions{Provider: staticProvider{roots: []string{"x"}}})
	require.NoError(t, err)

	viewID := ViewKey(0, "explorer")
	m.DisposeTreeView(viewID)
	_, err = m.GetChildren(context.Background(), viewID, "")
	assert.ErrorIs(t, err, ErrNotRegistered)

	m.DisposeTreeView(viewID) // unknown ids are a no-op
}
