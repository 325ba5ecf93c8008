package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

const sqliteTimeout = 5 * time.Second

// OpenSQLite opens (creating if needed) the device-local database file at
// path. A single connection is kept so writers serialize in-process.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, sqliteTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

// SQLiteKV stores entries in a two-column table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV ensures the kv table exists.
func NewSQLiteKV(ctx context.Context, db *sql.DB) (*SQLiteKV, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS device_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("create device_kv: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM device_kv WHERE key IN ("+placeholders(len(keys))+")",
		toArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// SetMany upserts all entries in one transaction.
func (s *SQLiteKV) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO device_kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, v); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteKV) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM device_kv WHERE key IN ("+placeholders(len(keys))+")",
		toArgs(keys)...)
	if err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}
