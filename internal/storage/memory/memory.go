// Package memory provides an in-process implementation of storage.Backend.
// It is used by tests and by the "memory" backend setting for throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/innkeeper/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend[struct{}] = (*Backend[struct{}])(nil)

// cloner is implemented by records holding reference types (e.g. models.Hotel)
// so that saved snapshots do not alias the caller's slices.
type cloner[T any] interface {
	Clone() T
}

// Backend keeps the mapping in memory. Load and Save copy the mapping so
// callers never share state with the backend.
type Backend[T any] struct {
	mu      sync.Mutex
	records map[string]T
	corrupt *storage.CorruptError
}

// New creates an empty in-memory backend.
func New[T any]() *Backend[T] {
	return &Backend[T]{records: map[string]T{}}
}

// Load returns a copy of the stored mapping.
func (b *Backend[T]) Load(ctx context.Context) (map[string]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.corrupt != nil {
		err := b.corrupt
		b.corrupt = nil
		return map[string]T{}, err
	}
	return copyRecords(b.records), nil
}

// Save replaces the stored mapping with a copy of records.
func (b *Backend[T]) Save(ctx context.Context, records map[string]T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = copyRecords(records)
	return nil
}

// Corrupt makes the next Load discard the stored mapping and report err,
// simulating unreadable persisted data.
func (b *Backend[T]) Corrupt(store string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = map[string]T{}
	b.corrupt = &storage.CorruptError{Store: store, Location: "memory", Err: err}
}

func copyRecords[T any](src map[string]T) map[string]T {
	dst := make(map[string]T, len(src))
	for id, rec := range src {
		if c, ok := any(rec).(cloner[T]); ok {
			rec = c.Clone()
		}
		dst[id] = rec
	}
	return dst
}
