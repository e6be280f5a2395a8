package outline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"go.lsp.dev/protocol"
)

// Result is the merged, position-ordered outline of one document.
type Result struct {
	Entries []protocol.SymbolInformation `json:"entries"`
}

// Aggregator fans a document out to every applicable provider and merges the
// answers into a single flattened outline. Provider failures are isolated:
// they shrink the result set and hit the error sink, nothing else.
type Aggregator struct {
	registry *Registry
	logger   *log.Logger
	onError  func(error)
}

// NewAggregator wires an aggregator to a provider registry. A nil logger
// falls back to log.Default.
func NewAggregator(registry *Registry, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	a := &Aggregator{registry: registry, logger: logger}
	a.onError = func(err error) {
		a.logger.Printf("outline: %v", err)
	}
	return a
}

// WithErrorSink replaces the sink receiving isolated provider failures.
func (a *Aggregator) WithErrorSink(sink func(error)) *Aggregator {
	if sink != nil {
		a.onError = sink
	}
	return a
}

// Aggregate invokes every provider applicable to doc concurrently, waits for
// all of them to settle, then flattens and sorts the union of their results
// by range start. Entries without a container name get containerLabel
// instead. Providers that return an error contribute zero entries; only
// cancellation of ctx aborts the aggregation as a whole.
func (a *Aggregator) Aggregate(ctx context.Context, doc *Document, containerLabel string) (*Result, error) {
	if doc == nil {
		return nil, errors.New("outline: document required")
	}
	providers := a.registry.All(doc)

	// Derived context so abandoning the aggregation signals every
	// in-flight provider call.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	settled := make([][]protocol.SymbolInformation, len(providers))
	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(slot int, provider Provider) {
			defer wg.Done()
			entries, err := provider.ProvideDocumentSymbols(ctx, doc)
			if err != nil {
				a.onError(fmt.Errorf("document symbol provider for %s: %w", doc.URI, err))
				return
			}
			settled[slot] = entries
		}(i, provider)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []protocol.SymbolInformation
	for _, batch := range settled {
		for _, entry := range batch {
			if entry.ContainerName == "" {
				entry.ContainerName = containerLabel
			}
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return CompareRangeStarts(entries[i].Location.Range, entries[j].Location.Range) < 0
	})
	return &Result{Entries: entries}, nil
}
