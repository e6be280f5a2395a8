package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func newTestStore(t *testing.T) *SymbolStore {
	t.Helper()
	store, err := NewSymbolStore(filepath.Join(t.TempDir(), "symbols.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedSymbol(name string, line uint32) protocol.SymbolInformation {
	return protocol.SymbolInformation{
		Name:          name,
		Kind:          protocol.SymbolKindFunction,
		ContainerName: "main",
		Location: protocol.Location{
			URI: "file:///ws/main.go",
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: 2},
				End:   protocol.Position{Line: line + 3, Character: 1},
			},
		},
	}
}

func TestSymbolStoreReplaceAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []protocol.SymbolInformation{
		storedSymbol("connect", 3),
		storedSymbol("disconnect", 20),
	}
	require.NoError(t, store.ReplaceForResource(ctx, "file:///ws/main.go", entries))

	found, err := store.Search(ctx, "connect", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "connect", found[0].Name)
	assert.Equal(t, "main", found[0].ContainerName)
	assert.Equal(t, protocol.DocumentURI("file:///ws/main.go"), found[0].Location.URI)
	assert.Equal(t, uint32(3), found[0].Location.Range.Start.Line)
	assert.Equal(t, uint32(2), found[0].Location.Range.Start.Character)

	found, err = store.Search(ctx, "disconnect", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestSymbolStoreReplaceIsAtomicPerResource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceForResource(ctx, "file:///ws/a.go", []protocol.SymbolInformation{
		storedSymbol("old", 1),
	}))
	require.NoError(t, store.ReplaceForResource(ctx, "file:///ws/b.go", []protocol.SymbolInformation{
		storedSymbol("other", 1),
	}))
	require.NoError(t, store.ReplaceForResource(ctx, "file:///ws/a.go", []protocol.SymbolInformation{
		storedSymbol("fresh", 1),
	}))

	count, err := store.CountForResource(ctx, "file:///ws/a.go")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := store.Search(ctx, "old", 10)
	require.NoError(t, err)
	assert.Empty(t, found)

	count, err = store.CountForResource(ctx, "file:///ws/b.go")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSymbolStoreSearchLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var entries []protocol.SymbolInformation
	for i := uint32(0); i < 20; i++ {
		entries = append(entries, storedSymbol("query", i))
	}
	require.NoError(t, store.ReplaceForResource(ctx, "file:///ws/q.go", entries))

	found, err := store.Search(ctx, "query", 5)
	require.NoError(t, err)
	assert.Len(t, found, 5)
}
