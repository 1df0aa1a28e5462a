// Package sqlite provides an embedded SQLite metadata recorder.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Storage records image metadata in a local SQLite file.
type Storage struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// New opens (creating if needed) the database at dbPath.
func New(dbPath string) (*Storage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrInvalidInput)
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &Storage{db: db}

	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return storage, nil
}

// createSchema creates the database schema. (user_id, token_id) is indexed
// but not unique: uniqueness comes from the upsert, as with the document store.
func (s *Storage) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_images (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     TEXT NOT NULL,
		token_id    TEXT NOT NULL,
		ipfs_hash   TEXT NOT NULL,
		prompt      TEXT NOT NULL DEFAULT '',
		parameters  TEXT NOT NULL DEFAULT '{}',
		status      TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_user_images_owner_token ON user_images(user_id, token_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
