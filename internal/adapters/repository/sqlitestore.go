package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/paddock/pkg/logger"

	_ "modernc.org/sqlite"
)

// SQLiteStore is an on-disk Store backed by a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	now    func() time.Time
	logger logger.Logger
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create dir: %w", ErrOpen, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	// One writer; the CLI is sequential anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.logger.Debug(ctx, "response cache opened", logger.String("path", path))
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS responses (
  key TEXT PRIMARY KEY,
  status_code INTEGER NOT NULL,
  body BLOB NOT NULL,
  fetched_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: create responses table: %w", ErrOpen, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, error) {
	e := Entry{Key: key}
	err := s.db.QueryRowContext(ctx,
		`SELECT status_code, body FROM responses WHERE key = ?`, key,
	).Scan(&e.StatusCode, &e.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("%w: get: %w", ErrQuery, err)
	}
	return e, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	const stmt = `
INSERT INTO responses (key, status_code, body, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  status_code=excluded.status_code,
  body=excluded.body,
  fetched_at=excluded.fetched_at;
`
	body := e.Body
	if body == nil {
		body = []byte{}
	}
	_, err := s.db.ExecContext(ctx, stmt, e.Key, e.StatusCode, body, s.now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: put: %w", ErrQuery, err)
	}
	return nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %w", ErrQuery, err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
