// Package sqlite provides SQLite-backed implementations of storage.Backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
)

// Ensure the views implement storage.Backend
var (
	_ storage.Backend[models.Hotel]    = (*HotelBackend)(nil)
	_ storage.Backend[models.Customer] = (*CustomerBackend)(nil)
)

// SQLiteStore owns the database connection shared by the hotel and customer
// backends.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; SQLite would otherwise return SQLITE_BUSY under
	// concurrent saves from the two stores.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Hotels returns the backend for the hotel store.
func (s *SQLiteStore) Hotels() *HotelBackend {
	return &HotelBackend{db: s.db}
}

// Customers returns the backend for the customer store.
func (s *SQLiteStore) Customers() *CustomerBackend {
	return &CustomerBackend{db: s.db}
}
