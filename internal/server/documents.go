package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/photo-svg-mcp/internal/vectorize"
)

// DefaultMaxDocuments bounds how many converted documents are kept for svg_save.
const DefaultMaxDocuments = 64

// StoredDocument is a converted document awaiting an optional save.
type StoredDocument struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Doc       *vectorize.Document
}

// DocumentStore keeps recent conversion results keyed by a random ID.
// When full, the oldest document is dropped. It is safe for concurrent use.
type DocumentStore struct {
	mu    sync.RWMutex
	max   int
	docs  map[string]*StoredDocument
	order []string
}

// NewDocumentStore creates a store holding at most max documents.
func NewDocumentStore(max int) *DocumentStore {
	if max <= 0 {
		max = DefaultMaxDocuments
	}
	return &DocumentStore{
		max:  max,
		docs: make(map[string]*StoredDocument),
	}
}

// Put stores doc and returns its entry with a fresh ID.
func (s *DocumentStore) Put(source string, doc *vectorize.Document) *StoredDocument {
	entry := &StoredDocument{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now(),
		Doc:       doc,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) >= s.max {
		delete(s.docs, s.order[0])
		s.order = s.order[1:]
	}
	s.docs[entry.ID] = entry
	s.order = append(s.order, entry.ID)

	return entry
}

// Get returns the document stored under id.
func (s *DocumentStore) Get(id string) (*StoredDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.docs[id]
	return entry, ok
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
