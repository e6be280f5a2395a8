package exthost

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

type fixedSymbols struct {
	entries []protocol.SymbolInformation
}

func (p fixedSymbols) ProvideDocumentSymbols(ctx context.Context, doc *outline.Document) ([]protocol.SymbolInformation, error) {
	return p.entries, nil
}

type memoryRecorder struct {
	replaced map[string][]protocol.SymbolInformation
}

func (r *memoryRecorder) ReplaceForResource(ctx context.Context, resource string, entries []protocol.SymbolInformation) error {
	if r.replaced == nil {
		r.replaced = make(map[string][]protocol.SymbolInformation)
	}
	r.replaced[resource] = entries
	return nil
}

func (r *memoryRecorder) Search(ctx context.Context, query string, limit int) ([]protocol.SymbolInformation, error) {
	var out []protocol.SymbolInformation
	for _, entries := range r.replaced {
		out = append(out, entries...)
	}
	return out, nil
}

func symbolFixture(name string, line uint32) protocol.SymbolInformation {
	return protocol.SymbolInformation{
		Name: name,
		Kind: protocol.SymbolKindFunction,
		Location: protocol.Location{
			URI:   "file:///ws/main.go",
			Range: protocol.Range{Start: protocol.Position{Line: line}, End: protocol.Position{Line: line}},
		},
	}
}

func setupCommands(t *testing.T, recorder SymbolRecorder) (*Commands, *DocumentStore) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	registry := outline.NewRegistry()
	registry.Register("go", fixedSymbols{entries: []protocol.SymbolInformation{
		symbolFixture("beta", 4),
		symbolFixture("alpha", 1),
	}})
	agg := outline.NewAggregator(registry, logger)
	docs := NewDocumentStore()
	cmds := NewCommands(logger)
	require.NoError(t, RegisterSymbolCommands(cmds, agg, docs, recorder))
	return cmds, docs
}

func TestExecuteDocumentSymbolProvider(t *testing.T) {
	recorder := &memoryRecorder{}
	cmds, docs := setupCommands(t, recorder)
	docs.Open(&outline.Document{URI: "file:///ws/main.go", LanguageID: "go", Version: 1})

	raw, err := cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, []interface{}{"file:///ws/main.go"})
	require.NoError(t, err)
	result, ok := raw.(*outline.Result)
	require.True(t, ok)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "alpha", result.Entries[0].Name)
	assert.Equal(t, "beta", result.Entries[1].Name)

	assert.Len(t, recorder.replaced["file:///ws/main.go"], 2)
}

func TestExecuteDocumentSymbolProviderBadResource(t *testing.T) {
	cmds, _ := setupCommands(t, nil)

	_, err := cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, []interface{}{"not a uri"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "not a uri")

	_, err = cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, []interface{}{"file:///ws/closed.go"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "file:///ws/closed.go")

	_, err = cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, []interface{}{42})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExecuteWorkspaceSymbolProvider(t *testing.T) {
	recorder := &memoryRecorder{}
	cmds, docs := setupCommands(t, recorder)
	docs.Open(&outline.Document{URI: "file:///ws/main.go", LanguageID: "go", Version: 1})

	_, err := cmds.Execute(context.Background(), CommandExecuteDocumentSymbols, []interface{}{"file:///ws/main.go"})
	require.NoError(t, err)

	raw, err := cmds.Execute(context.Background(), CommandExecuteWorkspaceSymbols, []interface{}{"alp"})
	require.NoError(t, err)
	result, ok := raw.(*outline.Result)
	require.True(t, ok)
	assert.Len(t, result.Entries, 2)
}

func TestExecuteUnknownCommand(t *testing.T) {
	cmds := NewCommands(log.New(io.Discard, "", 0))
	_, err := cmds.Execute(context.Background(), "no.such.command", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterDuplicateCommand(t *testing.T) {
	cmds := NewCommands(log.New(io.Discard, "", 0))
	handler := func(ctx context.Context, args []interface{}) (interface{}, error) { return nil, nil }
	require.NoError(t, cmds.Register("x", handler))
	assert.ErrorIs(t, cmds.Register("x", handler), ErrInvalidArgument)
}

func TestDocumentStoreResolve(t *testing.T) {
	docs := NewDocumentStore()
	doc := &outline.Document{URI: "file:///ws/a.sql", LanguageID: "sql"}
	docs.Open(doc)

	resolved, err := docs.Resolve("file:///ws/a.sql")
	require.NoError(t, err)
	assert.Same(t, doc, resolved)

	_, err = docs.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	docs.Close("file:///ws/a.sql")
	_, err = docs.Resolve("file:///ws/a.sql")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
