// Package store is the SQLite-backed home for everything the toc loader
// needs to know about documents: their content type, checksum, file-level
// monikers, and the dependency edges recorded while resolving a tree.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is bumped whenever createTables changes shape.
const SchemaVersion = 1

// Store wraps a SQLite connection holding the documents and dependencies
// tables.
type Store struct {
	Conn *sql.DB
}

// Open initializes a SQLite database at path, creating tables if absent.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite database: %w", err)
	}
	s := &Store{Conn: conn}
	if err := s.setup(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: set up schema: %w", err)
	}
	return s, nil
}

// OpenReadonly opens path read-only, for consumers that only ever query.
// No package in this module calls it; the commands use Open.
func OpenReadonly(path string, timeoutMs int) (*Store, error) {
	connStr := fmt.Sprintf("file:%s?mode=ro&_timeout=%d", path, timeoutMs)
	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("store: open readonly sqlite database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping readonly sqlite database: %w", err)
	}
	return &Store{Conn: conn}, nil
}

func (s *Store) setup() error {
	tx, err := s.Conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.createTables(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) createTables(tx *sql.Tx) error {
	const createDocuments = `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		checksum BLOB NOT NULL DEFAULT '',
		monikers TEXT NOT NULL DEFAULT ''
	);`
	const createDependencies = `
	CREATE TABLE IF NOT EXISTS dependencies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_path TEXT NOT NULL,
		to_path TEXT NOT NULL,
		kind TEXT NOT NULL,
		from_content_type TEXT NOT NULL DEFAULT ''
	);`

	if _, err := tx.Exec(createDocuments); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	if _, err := tx.Exec(createDependencies); err != nil {
		return fmt.Errorf("create dependencies table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.Conn.Close()
}
