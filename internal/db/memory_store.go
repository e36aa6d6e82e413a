package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store holding the tree as decoded JSON. It mirrors the
// Realtime Database semantics the application relies on: values are stored as JSON,
// null values and empty objects do not exist, deleting a node removes its subtree, and
// transactions are serialized. It backs STORE_BACKEND=memory and the test suites.
type MemoryStore struct {
	mu   sync.Mutex
	root interface{}
	keys *PushKeyGenerator
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: NewPushKeyGenerator(nil)}
}

// Get decodes the value at path into v.
func (s *MemoryStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	current := s.lookup(splitPath(path))
	s.mu.Unlock()

	if current == nil {
		return false, nil
	}
	if err := remarshal(current, v); err != nil {
		return false, fmt.Errorf("memory store: decode %q: %w", path, err)
	}
	return true, nil
}

// Set replaces the value at path.
func (s *MemoryStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := normalize(v)
	if err != nil {
		return fmt.Errorf("memory store: encode %q: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(splitPath(path), value)
	return nil
}

// Push stores v under a fresh push key below path.
func (s *MemoryStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	key := s.keys.Next()
	if err := s.Set(ctx, joinPath(path, key), v); err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes path and its subtree.
func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(splitPath(path), nil)
	return nil
}

// Transaction runs fn while holding the store lock, so no other write can interleave.
func (s *MemoryStore) Transaction(ctx context.Context, path string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segs := splitPath(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(memoryNode{value: s.lookup(segs)})
	if err != nil {
		return err
	}
	value, err := normalize(next)
	if err != nil {
		return fmt.Errorf("memory store: encode %q: %w", path, err)
	}
	s.write(segs, value)
	return nil
}

func (s *MemoryStore) lookup(segs []string) interface{} {
	current := s.root
	for _, seg := range segs {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = m[seg]
	}
	return current
}

// write stores an already normalized value; nil deletes.
func (s *MemoryStore) write(segs []string, value interface{}) {
	if len(segs) == 0 {
		s.root = value
		return
	}
	root, ok := s.root.(map[string]interface{})
	if !ok {
		root = make(map[string]interface{})
	}
	parent := root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := parent[seg].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			parent[seg] = child
		}
		parent = child
	}
	leaf := segs[len(segs)-1]
	if value == nil {
		delete(parent, leaf)
	} else {
		parent[leaf] = value
	}
	s.root = prune(root)
}

type memoryNode struct {
	value interface{}
}

func (n memoryNode) Unmarshal(v interface{}) error {
	return remarshal(n.value, v)
}

func splitPath(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func joinPath(base, key string) string {
	base = strings.Trim(base, "/")
	if base == "" {
		return key
	}
	return base + "/" + key
}

func remarshal(src, dst interface{}) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// normalize converts v to its decoded-JSON form with empty branches removed.
func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	var out interface{}
	if err := remarshal(v, &out); err != nil {
		return nil, err
	}
	return prune(out), nil
}

func prune(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	for k, child := range m {
		if pruned := prune(child); pruned == nil {
			delete(m, k)
		} else {
			m[k] = pruned
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
