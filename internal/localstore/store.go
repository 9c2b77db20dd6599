// Package localstore persists the pending mutation list on the device.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/blaisecz/meal-cycle/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_queue (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	payload    TEXT    NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
)`

// Store keeps the queue as one serialized, ordered list in a SQLite file.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates the parent directory and database file if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create queue directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}
	// One writer; the list is rewritten wholesale.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init queue schema: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted list. An empty store yields an empty list.
// Undecodable content yields an error wrapping domain.ErrCorruptQueue.
func (s *Store) Load(ctx context.Context) ([]domain.PendingOperation, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM pending_queue WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.PendingOperation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	var ops []domain.PendingOperation
	if err := json.Unmarshal([]byte(payload), &ops); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptQueue, err)
	}
	for i, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrCorruptQueue, i, err)
		}
	}
	if ops == nil {
		ops = []domain.PendingOperation{}
	}
	return ops, nil
}

// Save replaces the persisted list with ops.
func (s *Store) Save(ctx context.Context, ops []domain.PendingOperation) error {
	if ops == nil {
		ops = []domain.PendingOperation{}
	}
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pending_queue (id, payload, updated_at) VALUES (1, ?, strftime('%s','now'))
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(data))
	if err != nil {
		return fmt.Errorf("failed to write queue: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
