package stores

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desirppc/parcelace/internal/dbx"
)

// SQLiteStore is the persistent backend, a single-table key-value store
// backed by a local sqlite file. Sessions stored here survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// InitSQLiteStore opens (or creates) the database at dsn and ensures the
// session table exists. The caller imports the sqlite driver.
func InitSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
		  key   TEXT PRIMARY KEY,
		  value BLOB NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to init session table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already-initialized database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, s.db, key, value)
}

func (s *SQLiteStore) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs in a single transaction so the stored credential
// never ends up with a token but no user record.
func (s *SQLiteStore) SetMany(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range values {
			if err := s.set(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
