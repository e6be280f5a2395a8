package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

const sampleSource = `package sample

import "errors"

const MaxRetries = 3

var ErrClosed = errors.New("closed")

type Pool struct {
	size int
}

type Dialer interface {
	Dial() error
}

func NewPool(size int) *Pool {
	return &Pool{size: size}
}

func (p *Pool) Close() error {
	return nil
}
`

func TestGoOutlineSymbols(t *testing.T) {
	provider := NewGoOutlineProvider()
	doc := &outline.Document{
		URI:        "file:///ws/pool.go",
		LanguageID: "go",
		Text:       sampleSource,
	}

	symbols, err := provider.ProvideDocumentSymbols(context.Background(), doc)
	require.NoError(t, err)

	byName := make(map[string]protocol.SymbolInformation)
	for _, sym := range symbols {
		byName[sym.Name] = sym
	}
	require.Len(t, byName, 6)

	assert.Equal(t, protocol.SymbolKindConstant, byName["MaxRetries"].Kind)
	assert.Equal(t, protocol.SymbolKindVariable, byName["ErrClosed"].Kind)
	assert.Equal(t, protocol.SymbolKindStruct, byName["Pool"].Kind)
	assert.Equal(t, protocol.SymbolKindInterface, byName["Dialer"].Kind)
	assert.Equal(t, protocol.SymbolKindFunction, byName["NewPool"].Kind)
	assert.Equal(t, protocol.SymbolKindMethod, byName["Close"].Kind)
	assert.Equal(t, "Pool", byName["Close"].ContainerName)
	assert.Empty(t, byName["NewPool"].ContainerName)

	// Positions are zero-based: MaxRetries sits on source line 5.
	assert.Equal(t, uint32(4), byName["MaxRetries"].Location.Range.Start.Line)
	assert.Equal(t, protocol.DocumentURI("file:///ws/pool.go"), byName["Pool"].Location.URI)
}

func TestGoOutlineAggregated(t *testing.T) {
	registry := outline.NewRegistry()
	registry.Register("go", NewGoOutlineProvider())
	agg := outline.NewAggregator(registry, nil)

	doc := &outline.Document{URI: "file:///ws/pool.go", LanguageID: "go", Text: sampleSource}
	result, err := agg.Aggregate(context.Background(), doc, "pool.go")
	require.NoError(t, err)
	require.NotEmpty(t, result.Entries)

	// Aggregation orders by range start and fills empty containers.
	assert.Equal(t, "MaxRetries", result.Entries[0].Name)
	assert.Equal(t, "pool.go", result.Entries[0].ContainerName)
	assert.Equal(t, "Pool", result.Entries[len(result.Entries)-1].ContainerName)

	for i := 1; i < len(result.Entries); i++ {
		prev := result.Entries[i-1].Location.Range
		cur := result.Entries[i].Location.Range
		assert.LessOrEqual(t, outline.CompareRangeStarts(prev, cur), 0)
	}
}

func TestGoOutlineParseError(t *testing.T) {
	provider := NewGoOutlineProvider()
	doc := &outline.Document{URI: "file:///ws/broken.go", LanguageID: "go", Text: "func {{{"}

	_, err := provider.ProvideDocumentSymbols(context.Background(), doc)
	assert.Error(t, err)
}
