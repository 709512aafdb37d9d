// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records every successful clipboard copy in a local SQLite
// database so earlier snippets and references can be looked up again.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("history closed")
	ErrDatabaseError = errors.New("database error")
	ErrInvalidKind   = errors.New("invalid entry kind")
)

// =============================================================================
// TYPES
// =============================================================================

// Kind tells what was copied.
type Kind string

const (
	// KindSnippet is a full editor export.
	KindSnippet Kind = "snippet"
	// KindReference is a single encoded shortcut reference.
	KindReference Kind = "reference"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindSnippet || k == KindReference
}

// Entry is one copy event.
type Entry struct {
	ID        string
	PID       string
	Kind      Kind
	Text      string
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS copies (
    id TEXT PRIMARY KEY,
    pid TEXT NOT NULL,
    kind TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at INTEGER NOT NULL -- Unix nanoseconds
);

CREATE INDEX IF NOT EXISTS idx_copies_created_at ON copies(created_at);
`

// =============================================================================
// STORE
// =============================================================================

// Store is the copy history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores a copy event and returns it with its ID and timestamp filled in.
func (s *Store) Record(ctx context.Context, pid string, kind Kind, text string) (Entry, error) {
	if s.db == nil {
		return Entry{}, ErrClosed
	}
	if !kind.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	e := Entry{
		ID:        uuid.NewString(),
		PID:       pid,
		Kind:      kind,
		Text:      text,
		CreatedAt: s.now(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO copies (id, pid, kind, text, created_at) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.PID, string(e.Kind), e.Text, e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, pid, kind, text, created_at FROM copies ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
			ts   int64
		)
		if err := rows.Scan(&e.ID, &e.PID, &kind, &e.Text, &ts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt = time.Unix(0, ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return out, nil
}

// Prune keeps the newest keep entries and deletes the rest. It returns the
// number of rows removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM copies WHERE id NOT IN (
			SELECT id FROM copies ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return res.RowsAffected()
}
