package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ecopontos-backend-go/internal/db"
)

var fixedNow = time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

const fixedStamp = "2024-03-10T12:30:00.000Z"

func fixedClock() time.Time { return fixedNow }

var errInjected = errors.New("injected failure")

// failingSetStore fails every Set whose path starts with prefix.
type failingSetStore struct {
	*db.MemoryStore
	prefix string
}

func (s *failingSetStore) Set(ctx context.Context, path string, v interface{}) error {
	if strings.HasPrefix(path, s.prefix) {
		return errInjected
	}
	return s.MemoryStore.Set(ctx, path, v)
}

type countingEvents struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingEvents() *countingEvents {
	return &countingEvents{counts: make(map[string]int)}
}

func (e *countingEvents) RecordEvent(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counts[event]++
}

func (e *countingEvents) count(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts[event]
}

func ptr[T any](v T) *T { return &v }
