package exthost

import (
	"fmt"
	"net/url"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/RamakrishnanGH/sqlopsstudio/outline"
)

// DocumentStore is the model-lookup collaborator: it tracks the documents
// the editor currently has open, keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]*outline.Document
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[protocol.DocumentURI]*outline.Document)}
}

// Open registers (or replaces) a document snapshot.
func (s *DocumentStore) Open(doc *outline.Document) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.URI] = doc
}

// Close drops the document for uri.
func (s *DocumentStore) Close(uri protocol.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the open document for uri, if any.
func (s *DocumentStore) Get(uri protocol.DocumentURI) (*outline.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Resolve turns a raw resource string into an open document. Malformed and
// unresolvable resources both fail with ErrInvalidArgument naming the
// resource.
func (s *DocumentStore) Resolve(resource string) (*outline.Document, error) {
	if resource == "" {
		return nil, fmt.Errorf("%w: empty resource", ErrInvalidArgument)
	}
	parsed, err := url.Parse(resource)
	if err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: malformed resource %q", ErrInvalidArgument, resource)
	}
	doc, ok := s.Get(protocol.DocumentURI(resource))
	if !ok {
		return nil, fmt.Errorf("%w: no document for resource %q", ErrInvalidArgument, resource)
	}
	return doc, nil
}
