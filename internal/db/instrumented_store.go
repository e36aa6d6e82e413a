package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTransactionAborted marks, in the error handed to an OperationRecorder, a transaction
// that its update function stopped. Callers still get the update function's error.
var ErrTransactionAborted = errors.New("transaction aborted by update function")

// OperationRecorder receives the outcome of every store call.
type OperationRecorder interface {
	ObserveStoreOperation(op string, duration time.Duration, err error)
}

// InstrumentedStore reports the latency and outcome of each call on the wrapped Store.
type InstrumentedStore struct {
	next     Store
	recorder OperationRecorder
}

// NewInstrumentedStore wraps next. A nil recorder returns next unchanged.
func NewInstrumentedStore(next Store, recorder OperationRecorder) Store {
	if recorder == nil {
		return next
	}
	return &InstrumentedStore{next: next, recorder: recorder}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.recorder.ObserveStoreOperation(op, time.Since(start), err)
}

func (s *InstrumentedStore) Get(ctx context.Context, path string, v interface{}) (found bool, err error) {
	start := time.Now()
	defer func() { s.observe("get", start, err) }()
	return s.next.Get(ctx, path, v)
}

func (s *InstrumentedStore) Set(ctx context.Context, path string, v interface{}) (err error) {
	start := time.Now()
	defer func() { s.observe("set", start, err) }()
	return s.next.Set(ctx, path, v)
}

func (s *InstrumentedStore) Push(ctx context.Context, path string, v interface{}) (key string, err error) {
	start := time.Now()
	defer func() { s.observe("push", start, err) }()
	return s.next.Push(ctx, path, v)
}

func (s *InstrumentedStore) Delete(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()
	return s.next.Delete(ctx, path)
}

func (s *InstrumentedStore) Transaction(ctx context.Context, path string, fn UpdateFunc) (err error) {
	start := time.Now()
	var fnErr error
	defer func() {
		observed := err
		if err != nil && fnErr != nil && errors.Is(err, fnErr) {
			observed = fmt.Errorf("%w: %w", ErrTransactionAborted, err)
		}
		s.observe("transaction", start, observed)
	}()
	return s.next.Transaction(ctx, path, func(current Node) (interface{}, error) {
		next, err := fn(current)
		fnErr = err
		return next, err
	})
}
