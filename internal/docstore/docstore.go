// Package docstore defines the document-database contract the service
// persists through: per-collection CRUD plus batch delete. Collections are
// addressed by slash-separated paths, so an order's item subcollection is
// just another collection under the parent's path.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists at the key.
var ErrNotFound = errors.New("document not found")

// Fields is the schemaless body of a document.
type Fields map[string]interface{}

// Document pairs a key with its fields, as returned by List.
type Document struct {
	Key    string
	Fields Fields
}

// Store is the collection-store contract. Put fully overwrites the
// document at key (never a merge). List returns documents in
// store-defined order; callers must not rely on it being stable.
// Delete of an absent key is accepted silently. BatchDelete removes
// every listed key as a single awaited step.
type Store interface {
	Put(ctx context.Context, path, key string, fields Fields) error
	Get(ctx context.Context, path, key string) (Fields, error)
	List(ctx context.Context, path string) ([]Document, error)
	Delete(ctx context.Context, path, key string) error
	BatchDelete(ctx context.Context, path string, keys []string) error
}
