package db

import (
	"context"
	"errors"

	"ecopontos-backend-go/internal/models"
)

// ErrNotFound is returned by repositories when the addressed node does not exist.
var ErrNotFound = errors.New("document not found")

// Node is the current value of a location inside a transaction.
type Node interface {
	// Unmarshal decodes the current value into v. An absent node decodes as JSON null.
	Unmarshal(v interface{}) error
}

// UpdateFunc computes the new value of a location from its current value.
// Returning nil deletes the location; returning an error aborts the transaction and the
// error is handed back to the caller unchanged.
type UpdateFunc func(current Node) (interface{}, error)

// Store is the hierarchical keyspace the application reads and writes. Paths are
// slash-separated; the empty path is the root.
type Store interface {
	// Get decodes the value at path into v and reports whether the location exists.
	Get(ctx context.Context, path string, v interface{}) (bool, error)
	// Set replaces the value at path.
	Set(ctx context.Context, path string, v interface{}) error
	// Push stores v under a fresh store-generated key below path and returns the key.
	Push(ctx context.Context, path string, v interface{}) (string, error)
	// Delete removes path and its entire subtree.
	Delete(ctx context.Context, path string) error
	// Transaction is a conditional write: fn's result is stored only if the location
	// did not change since fn observed it, otherwise fn is run again on the new value.
	Transaction(ctx context.Context, path string, fn UpdateFunc) error
}

// decodeRaw unmarshals a transaction node into a generic JSON map.
// A nil map with a nil error means the node does not exist.
func decodeRaw(n Node) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := n.Unmarshal(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// readRecord reads the node at path without imposing a schema on it. An absent node
// yields a nil record.
func readRecord(ctx context.Context, store Store, path string) (models.Record, error) {
	var record models.Record
	found, err := store.Get(ctx, path, &record)
	if err != nil || !found {
		return nil, err
	}
	return record, nil
}
