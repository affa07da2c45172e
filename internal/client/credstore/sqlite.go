// Copyright (c) 2026 ClaimPoint. All rights reserved.

// SQLite implementation of the credential store.
package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS credentials (
		id    INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		role  TEXT NOT NULL
	)`

// SQLiteStore keeps the credential pair in a single-row sqlite table under
// the user's data directory.
type SQLiteStore struct {
	db *sql.DB
}

/*
Open opens (creating if needed) the credential database at path.

Parameters:
  - context: context.Context
  - path: string (file path, or ":memory:" for tests)

Returns:
  - *SQLiteStore: Ready store
  - error: Open or bootstrap failures
*/
func Open(context context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("credstore_open_failed: %w", err)
	}

	if _, err := db.ExecContext(context, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("credstore_bootstrap_failed: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (store *SQLiteStore) Close() error {
	return store.db.Close()
}

// Get returns the stored credentials, zero-valued when absent.
func (store *SQLiteStore) Get(context context.Context) (Credentials, error) {
	var credentials Credentials

	err := store.db.QueryRowContext(context,
		"SELECT token, role FROM credentials WHERE id = 1",
	).Scan(&credentials.Token, &credentials.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("credstore_get_failed: %w", err)
	}

	return credentials, nil
}

// Set stores the token and role together, replacing any prior pair.
func (store *SQLiteStore) Set(context context.Context, token, role string) error {
	const query = `
		INSERT INTO credentials (id, token, role) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, role = excluded.role`

	if _, err := store.db.ExecContext(context, query, token, role); err != nil {
		return fmt.Errorf("credstore_set_failed: %w", err)
	}

	return nil
}

// Clear removes the stored pair.
func (store *SQLiteStore) Clear(context context.Context) error {
	if _, err := store.db.ExecContext(context, "DELETE FROM credentials WHERE id = 1"); err != nil {
		return fmt.Errorf("credstore_clear_failed: %w", err)
	}
	return nil
}
