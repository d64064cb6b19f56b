// Package storage provides abstractions for persistent record storage.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Names of the two record stores. Backends use them as file names, table
// groups or key suffixes.
const (
	HotelsStore    = "hotels"
	CustomersStore = "customers"
)

// Backend loads and saves one store as a whole mapping from record ID to
// record. There is no partial update: every Save overwrites the full mapping.
// This abstraction allows swapping storage backends (JSON file, SQLite, Redis,
// memory) without changing the service layer.
type Backend[T any] interface {
	// Load returns the full mapping. A store that does not exist yet loads as
	// an empty, non-nil map.
	//
	// If the persisted data is malformed, Load returns an empty map together
	// with a *CorruptError so the caller can decide to carry on.
	Load(ctx context.Context) (map[string]T, error)

	// Save replaces the persisted mapping with records.
	Save(ctx context.Context, records map[string]T) error
}

// ErrCorrupt is matched by every *CorruptError.
var ErrCorrupt = errors.New("corrupt store")

// CorruptError reports persisted data that could not be decoded.
// Callers recover by treating the store as empty, so prior state may be lost.
type CorruptError struct {
	// Store is the store name (HotelsStore or CustomersStore).
	Store string

	// Location identifies where the data lives (file path, Redis key, ...).
	Location string

	// Err is the underlying decode error.
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupted %s data at %s: %v", e.Store, e.Location, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorrupt) true for any *CorruptError.
func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }
