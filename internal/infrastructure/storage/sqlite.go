// Package storage persists the cart document.
//
// The cart lives under a single key, the way the storefront's browser
// build keeps it under one localStorage entry. The SQLite backend stores
// the JSON document in a small key/value table so tests (and curious
// operators) can inject or inspect raw documents.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gostorefront/cart-backend/internal/domain/cart"
)

// Storage provides SQLite-backed cart persistence.
// It implements the CartStore interface.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// Compile-time check that Storage implements CartStore
var _ CartStore = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db, logger: logger}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Load reads the cart document. A missing row or an unparseable document
// loads as the empty cart; only driver failures surface as errors.
func (s *Storage) Load() (cart.State, error) {
	var document string
	err := s.db.QueryRow(
		"SELECT document FROM cart_documents WHERE key = ?", CartKey,
	).Scan(&document)
	if err == sql.ErrNoRows {
		return cart.Empty(), nil
	}
	if err != nil {
		return cart.Empty(), fmt.Errorf("loading cart document: %w", err)
	}

	state, ok := DecodeState([]byte(document))
	if !ok {
		s.logger.Warn("persisted cart document is malformed, treating as empty", "key", CartKey)
	}
	return state, nil
}

// Save writes the cart document under the cart key.
func (s *Storage) Save(state cart.State) error {
	document, err := EncodeState(state)
	if err != nil {
		return fmt.Errorf("encoding cart document: %w", err)
	}

	_, err = s.db.Exec(`
	INSERT INTO cart_documents (key, document, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		document = excluded.document,
		updated_at = excluded.updated_at
	`, CartKey, string(document))
	if err != nil {
		return fmt.Errorf("saving cart document: %w", err)
	}

	return nil
}

// putRawDocument writes an arbitrary document under a key, bypassing
// encoding. Used by tests to simulate hand-edited or corrupted storage.
func (s *Storage) putRawDocument(key, document string) error {
	_, err := s.db.Exec(`
	INSERT INTO cart_documents (key, document, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		document = excluded.document,
		updated_at = excluded.updated_at
	`, key, document)
	return err
}
