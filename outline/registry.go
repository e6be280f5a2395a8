package outline

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"
)

// Document is the abstract text model handed to symbol providers. The host
// owns the real buffer; providers only ever see this snapshot.
type Document struct {
	URI        protocol.DocumentURI
	LanguageID string
	Version    int
	Text       string
}

// Provider produces the symbol outline of a single document. Implementations
// must be safe to invoke concurrently with other providers and should honor
// ctx cancellation at their own call boundaries.
type Provider interface {
	ProvideDocumentSymbols(ctx context.Context, doc *Document) ([]protocol.SymbolInformation, error)
}

// WildcardSelector matches every document regardless of language.
const WildcardSelector = "*"

type registration struct {
	selector string
	provider Provider
}

// Registry keeps symbol providers keyed by language selector.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider for the given language id. WildcardSelector
// registers the provider for every document.
func (r *Registry) Register(selector string, provider Provider) {
	if provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registration{selector: selector, provider: provider})
}

// All returns the providers applicable to doc, in registration order.
func (r *Registry) All(doc *Document) []Provider {
	if doc == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var providers []Provider
	for _, entry := range r.entries {
		if entry.selector == WildcardSelector || entry.selector == doc.LanguageID {
			providers = append(providers, entry.provider)
		}
	}
	return providers
}
