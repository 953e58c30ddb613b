package docstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
// It preserves insertion order per collection so List enumeration is
// deterministic, which the real backends do not promise.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]Fields
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (m *MemoryStore) collection(path string) *memCollection {
	col, ok := m.collections[path]
	if !ok {
		col = &memCollection{docs: make(map[string]Fields)}
		m.collections[path] = col
	}
	return col
}

// Put creates or fully overwrites the document at key.
func (m *MemoryStore) Put(_ context.Context, path, key string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(path)
	if _, exists := col.docs[key]; !exists {
		col.order = append(col.order, key)
	}
	col.docs[key] = copyFields(fields)
	return nil
}

// Get returns the document at key, or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, path, key string) (Fields, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[path]
	if !ok {
		return nil, ErrNotFound
	}
	fields, ok := col.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFields(fields), nil
}

// List returns all documents in the collection in insertion order.
func (m *MemoryStore) List(_ context.Context, path string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[path]
	if !ok {
		return nil, nil
	}
	docs := make([]Document, 0, len(col.order))
	for _, key := range col.order {
		docs = append(docs, Document{Key: key, Fields: copyFields(col.docs[key])})
	}
	return docs, nil
}

// Delete removes the document at key; absent keys are a no-op.
func (m *MemoryStore) Delete(_ context.Context, path, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(path, key)
	return nil
}

// BatchDelete removes every listed key in one step.
func (m *MemoryStore) BatchDelete(_ context.Context, path string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		m.remove(path, key)
	}
	return nil
}

func (m *MemoryStore) remove(path, key string) {
	col, ok := m.collections[path]
	if !ok {
		return
	}
	if _, exists := col.docs[key]; !exists {
		return
	}
	delete(col.docs, key)
	for i, k := range col.order {
		if k == key {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
}

// Count reports the number of documents in a collection. Test helper.
func (m *MemoryStore) Count(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[path]
	if !ok {
		return 0
	}
	return len(col.docs)
}

func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
