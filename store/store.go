// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed store of field values, standing in for the host's
// item storage.
// Usage: cmd/nestedjson db put|get|list|set.

// Package store keeps nested JSON field values keyed by record id.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/tree"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("store: record not found")

// Record is one stored field value.
type Record struct {
	ID         string
	Collection string
	Field      string
	Value      tree.Tree
	UpdatedAt  time.Time
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS fields (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    field TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL      -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_fields_collection ON fields(collection, field);
`

// Store is a handle on the database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	logging.S().Debugf("Store: opened %s", path)
	return &Store{db: db, now: time.Now}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case current > schemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", current, schemaVersion)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces rec and returns its id. An empty id gets a new
// UUID.
func (s *Store) Put(ctx context.Context, rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	value, err := encodeValue(rec.Value)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO fields (id, collection, field, value, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    collection = excluded.collection,
    field = excluded.field,
    value = excluded.value,
    updated_at = excluded.updated_at`,
		rec.ID, rec.Collection, rec.Field, value, s.now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("failed to put %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, collection, field, value, updated_at FROM fields WHERE id = ?", id)
	return scanRecord(row)
}

// Find returns the most recently updated record for collection and field.
func (s *Store) Find(ctx context.Context, collection, field string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, collection, field, value, updated_at FROM fields
WHERE collection = ? AND field = ?
ORDER BY updated_at DESC LIMIT 1`, collection, field)
	return scanRecord(row)
}

// List returns the records of collection ordered by field then id. An
// empty collection lists everything.
func (s *Store) List(ctx context.Context, collection string) ([]Record, error) {
	query := "SELECT id, collection, field, value, updated_at FROM fields"
	var args []interface{}
	if collection != "" {
		query += " WHERE collection = ?"
		args = append(args, collection)
	}
	query += " ORDER BY collection, field, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the record with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fields WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Update applies tree.UpdateNestedValue to the stored value of id inside a
// transaction. Passing tree.Absent removes the leaf.
func (s *Store) Update(ctx context.Context, id, path string, value interface{}) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	rec, err := scanRecord(tx.QueryRowContext(ctx,
		"SELECT id, collection, field, value, updated_at FROM fields WHERE id = ?", id))
	if err != nil {
		return Record{}, err
	}
	if err := tree.UpdateNestedValue(rec.Value, path, value); err != nil {
		return Record{}, err
	}
	encoded, err := encodeValue(rec.Value)
	if err != nil {
		return Record{}, err
	}
	rec.UpdatedAt = s.now()
	if _, err := tx.ExecContext(ctx, "UPDATE fields SET value = ?, updated_at = ? WHERE id = ?",
		encoded, rec.UpdatedAt.UnixNano(), id); err != nil {
		return Record{}, fmt.Errorf("failed to update %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec     Record
		value   string
		updated int64
	)
	if err := row.Scan(&rec.ID, &rec.Collection, &rec.Field, &value, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	decoded, err := document.Decode([]byte(value), document.JSON)
	if err != nil {
		return Record{}, fmt.Errorf("record %s holds invalid JSON: %w", rec.ID, err)
	}
	rec.Value = decoded
	rec.UpdatedAt = time.Unix(0, updated)
	return rec, nil
}

func encodeValue(v tree.Tree) (string, error) {
	if v == nil {
		v = tree.Tree{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return string(data), nil
}
