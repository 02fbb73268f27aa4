package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend is a durable [Backend] over a single sqlite key-value table.
//
// Each collection key maps to one row in the storage table whose value column
// holds the serialized JSON array for that collection.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a sqlite database at the specified
// path and applies schema migrations. The path can be ":memory:" for an
// in-memory database that disappears on close.
func OpenSQLite(path string, maxOpenConns, maxIdleConns int) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// DB exposes the underlying connection for setup and migration tooling.
func (b *SQLiteBackend) DB() *sql.DB {
	return b.db
}

func (b *SQLiteBackend) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.QueryRow("SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Write(key string, value []byte) error {
	query := `
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := b.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(key string) error {
	if _, err := b.db.Exec("DELETE FROM storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
