package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// StateStore holds the engine's local mutable state: the key-value slots
// backing the search-intent store, and the recommendation feedback log.
// Listing data lives in Postgres; this store is deliberately small and
// per-deployment local.
type StateStore struct {
	db *sql.DB
}

// OpenStateStore opens (or creates) the SQLite state database at path.
func OpenStateStore(path string) (*StateStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &StateStore{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error { return s.db.Close() }

func (s *StateStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recommendation_feedback (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  recommendation_id TEXT NOT NULL,
  property_id TEXT NOT NULL,
  action TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("ensure state schema: %w", err)
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_feedback_recommendation ON recommendation_feedback(recommendation_id);`); err != nil {
		return fmt.Errorf("ensure feedback index: %w", err)
	}
	return nil
}

// Get returns the value stored under key and whether it exists.
func (s *StateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous value.
func (s *StateStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// LogFeedback appends a user action on a recommendation set.
func (s *StateStore) LogFeedback(ctx context.Context, recommendationID, propertyID, action string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO recommendation_feedback (recommendation_id, property_id, action)
VALUES (?, ?, ?)
`, recommendationID, propertyID, action)
	if err != nil {
		return fmt.Errorf("log feedback: %w", err)
	}
	return nil
}
