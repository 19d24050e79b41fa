package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS raw_counts (
	key TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	chars INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	payload BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_raw_counts_name ON raw_counts(name);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) PutCounts(ctx context.Context, e store.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	payload, err := store.EncodeCounts(e.Counts)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO raw_counts (key, name, chars, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			chars = excluded.chars,
			created_at = excluded.created_at,
			payload = excluded.payload
	`, e.Key, e.Name, e.Chars, e.CreatedAt.UTC().Format(time.RFC3339Nano), payload)
	if err != nil {
		return fmt.Errorf("put counts %q: %w", e.Key, err)
	}
	return nil
}

func (s *sqliteStore) GetCounts(ctx context.Context, key string) (ngram.Counts, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM raw_counts WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return ngram.Counts{}, false, nil
	}
	if err != nil {
		return ngram.Counts{}, false, fmt.Errorf("get counts %q: %w", key, err)
	}

	counts, err := store.DecodeCounts(payload)
	if err != nil {
		return ngram.Counts{}, false, fmt.Errorf("entry %q: %w", key, err)
	}
	return counts, true, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]store.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, chars, created_at
		FROM raw_counts
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []store.Entry
	for rows.Next() {
		var e store.Entry
		var createdAt string
		if err := rows.Scan(&e.Key, &e.Name, &e.Chars, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM raw_counts WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", key, internalerr.ErrNotFound)
	}
	return nil
}
