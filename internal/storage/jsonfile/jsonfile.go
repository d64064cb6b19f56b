// Package jsonfile provides a storage.Backend that keeps one store in a
// single UTF-8 JSON file, rewritten in full on every save.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmynk/innkeeper/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend[struct{}] = (*Backend[struct{}])(nil)

// Backend stores a mapping in the JSON file at path.
type Backend[T any] struct {
	store string
	path  string
}

// New creates a backend for the named store at path. The file and its parent
// directories are created on the first Save.
func New[T any](store, path string) *Backend[T] {
	return &Backend[T]{store: store, path: path}
}

// Path returns the file the backend reads and writes.
func (b *Backend[T]) Path() string {
	return b.path
}

// Load reads and decodes the file. A missing file is an empty store.
func (b *Backend[T]) Load(ctx context.Context) (map[string]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return map[string]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	return storage.DecodeSnapshot[T](data, b.store, b.path)
}

// Save writes records to a temp file in the same directory and renames it
// over the target, so readers see either the old or the new mapping.
func (b *Backend[T]) Save(ctx context.Context, records map[string]T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := storage.EncodeSnapshot(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}
	return nil
}
