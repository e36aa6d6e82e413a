package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	rtdb "firebase.google.com/go/v4/db"
)

// FirebaseStore implements Store on top of the Firebase Realtime Database.
type FirebaseStore struct {
	client *rtdb.Client
}

// NewFirebaseStore wraps an initialized Realtime Database client.
func NewFirebaseStore(client *rtdb.Client) (*FirebaseStore, error) {
	if client == nil {
		return nil, errors.New("firebase store: database client is nil")
	}
	return &FirebaseStore{client: client}, nil
}

func (s *FirebaseStore) ref(path string) *rtdb.Ref {
	if path == "" {
		return s.client.NewRef("/")
	}
	return s.client.NewRef(path)
}

// Get decodes the value at path into v. The raw payload is fetched first so that an
// absent node (JSON null) can be told apart from a node holding zero values.
func (s *FirebaseStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	var raw json.RawMessage
	if err := s.ref(path).Get(ctx, &raw); err != nil {
		return false, fmt.Errorf("firebase store: get %q: %w", path, err)
	}
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("firebase store: decode %q: %w", path, err)
	}
	return true, nil
}

// Set replaces the value at path.
func (s *FirebaseStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := s.ref(path).Set(ctx, v); err != nil {
		return fmt.Errorf("firebase store: set %q: %w", path, err)
	}
	return nil
}

// Push stores v under a server-generated push key.
func (s *FirebaseStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	child, err := s.ref(path).Push(ctx, v)
	if err != nil {
		return "", fmt.Errorf("firebase store: push %q: %w", path, err)
	}
	return child.Key, nil
}

// Delete removes path and its subtree.
func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := s.ref(path).Delete(ctx); err != nil {
		return fmt.Errorf("firebase store: delete %q: %w", path, err)
	}
	return nil
}

// Transaction delegates to the Realtime Database transaction, which writes with an
// ETag precondition and retries fn when the node changed concurrently. Errors returned
// by fn come back unwrapped so callers can match their sentinels.
func (s *FirebaseStore) Transaction(ctx context.Context, path string, fn UpdateFunc) error {
	var fnErr error
	err := s.ref(path).Transaction(ctx, func(node rtdb.TransactionNode) (interface{}, error) {
		next, err := fn(node)
		fnErr = err
		return next, err
	})
	if err != nil {
		if fnErr != nil && errors.Is(err, fnErr) {
			return fnErr
		}
		return fmt.Errorf("firebase store: transaction %q: %w", path, err)
	}
	return nil
}
