// Package store provides SQLite-backed persistence for givo tasks.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	_ "modernc.org/sqlite"
)

// Store provides access to the durable todos table.
type Store struct {
	db *sql.DB
}

// New opens the database handle at dbPath. The table is created by Initialize.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %w", apperr.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", apperr.ErrStorageUnavailable, err)
	}

	// A single connection serialises every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Initialize creates the todos table if needed. It is idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY NOT NULL,
		title TEXT,
		completed INTEGER,
		createdAt TEXT
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: create todos table: %w", apperr.ErrStorageUnavailable, err)
	}
	return nil
}

// ListAll returns every record, newest first. Records sharing a timestamp
// come back latest insert first, matching the in-memory order.
func (s *Store) ListAll(ctx context.Context) ([]models.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, completed, createdAt FROM todos ORDER BY createdAt DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query todos: %w", apperr.ErrStorageRead, err)
	}
	defer rows.Close()

	var records []models.TaskRecord
	for rows.Next() {
		var rec models.TaskRecord
		var title, createdAt sql.NullString
		var completed sql.NullInt64
		if err := rows.Scan(&rec.ID, &title, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan todo: %w", apperr.ErrStorageRead, err)
		}
		rec.Title = title.String
		rec.Completed = int(completed.Int64)
		rec.CreatedAt = createdAt.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate todos: %w", apperr.ErrStorageRead, err)
	}
	return records, nil
}

// Insert upserts a record keyed by its id.
func (s *Store) Insert(ctx context.Context, rec models.TaskRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO todos (id, title, completed, createdAt) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Completed, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert todo: %w", apperr.ErrStorageWrite, err)
	}
	return nil
}

// SetCompletion updates the completion flag. Unknown ids are a no-op.
func (s *Store) SetCompletion(ctx context.Context, id string, completed int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE todos SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("%w: update todo: %w", apperr.ErrStorageWrite, err)
	}
	return nil
}

// Delete removes a record. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete todo: %w", apperr.ErrStorageWrite, err)
	}
	return nil
}

// Get returns a single record, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*models.TaskRecord, error) {
	rec := &models.TaskRecord{}
	var title, createdAt sql.NullString
	var completed sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, completed, createdAt FROM todos WHERE id = ?`, id,
	).Scan(&rec.ID, &title, &completed, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query todo: %w", apperr.ErrStorageRead, err)
	}
	rec.Title = title.String
	rec.Completed = int(completed.Int64)
	rec.CreatedAt = createdAt.String
	return rec, nil
}
