// Package store keeps the profile, job descriptions and generated resumes of
// the single MyCV user in SQLite. It backs the demo server.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/raysh454/mycv/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

var (
	ErrNotFound = errors.New("not found")
	ErrNoUser   = errors.New("personal info must be created first")
)

// NotFoundError names the missing entity; its message is what the API sends
// as detail, e.g. "Work experience not found".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string) error { return &NotFoundError{Entity: entity} }

// Store is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (or creates) the database at dsn and applies the schema. Use
// MemoryDSN for a throwaway store.
func Open(dsn string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a separate database; one connection
	// also serialises writers.
	db.SetMaxOpenConns(1)

	s, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("store opened", logging.Field{Key: "dsn", Value: dsn})
	return s, nil
}

// New wraps an open database and runs the schema.
func New(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if err := applySchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// affectedOrNotFound turns a zero-row update or delete into a NotFoundError.
func affectedOrNotFound(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity)
	}
	return nil
}

// ─── null helpers ──────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// nullable converts optional values for use as query arguments.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
