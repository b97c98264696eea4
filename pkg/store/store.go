// Package store implements named persistence for strategy documents.
//
// The validation core never touches storage: it is handed document text and
// returns report text. Everything here serves the surrounding surfaces (CLI,
// HTTP, MCP, TUI), which receive an explicit Store rather than sharing a
// package-level connection.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Load when no strategy has the given name.
var ErrNotFound = errors.New("strategy not found")

// DefaultName is the baseline strategy the diff and promote operations
// compare against.
const DefaultName = "default_strategy"

// Store is a named key/value repository of serialized strategy documents.
type Store interface {
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, text string) error
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// SQLite is the file-backed Store implementation.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Open opens (creating if needed) a strategy database at path.
func Open(path string, log *slog.Logger) (*SQLite, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open strategy db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS strategies (
			name       TEXT PRIMARY KEY,
			doc        TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create strategies table: %w", err)
	}
	return &SQLite{db: db, log: log}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Load returns the serialized document stored under name.
func (s *SQLite) Load(ctx context.Context, name string) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM strategies WHERE name = ?", name).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("load strategy %q: %w", name, err)
	}
	return text, nil
}

// Save stores text under name, replacing any previous document.
func (s *SQLite) Save(ctx context.Context, name, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strategies (name, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		name, text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save strategy %q: %w", name, err)
	}
	s.log.Info("strategy saved", "name", name, "bytes", len(text))
	return nil
}

// Remove deletes the named strategy. Removing an absent name is not an error.
func (s *SQLite) Remove(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM strategies WHERE name = ?", name); err != nil {
		return fmt.Errorf("remove strategy %q: %w", name, err)
	}
	s.log.Info("strategy removed", "name", name)
	return nil
}

// List returns all stored strategy names in lexical order.
func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM strategies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan strategy name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Promote makes the named strategy the baseline: its document is saved under
// DefaultName and every other stored strategy is removed.
func Promote(ctx context.Context, st Store, name string) error {
	text, err := st.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, DefaultName, text); err != nil {
		return err
	}
	names, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == DefaultName {
			continue
		}
		if err := st.Remove(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
