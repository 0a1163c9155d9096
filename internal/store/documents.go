package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doctoolkit/tocloader/internal/toc"
)

// ErrDocumentNotFound is the error for a path that has never been recorded.
// GetDocument reports a missing document through its bool result instead, so
// no function in this package currently returns it.
var ErrDocumentNotFound = fmt.Errorf("store: document not found")

// UpsertDocument records or updates a document's content type and checksum.
func (s *Store) UpsertDocument(file toc.FilePath, contentType string, checksum []byte) error {
	const q = `
	INSERT INTO documents (path, content_type, checksum)
	VALUES (?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET content_type = excluded.content_type, checksum = excluded.checksum;`
	_, err := s.Conn.Exec(q, file.Path(), contentType, checksum)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", file.Path(), err)
	}
	return nil
}

// SetFileLevelMonikers stores monikers as a comma-joined list.
func (s *Store) SetFileLevelMonikers(file toc.FilePath, monikers toc.MonikerList) error {
	const q = `
	INSERT INTO documents (path, monikers)
	VALUES (?, ?)
	ON CONFLICT(path) DO UPDATE SET monikers = excluded.monikers;`
	_, err := s.Conn.Exec(q, file.Path(), strings.Join(monikers.Slice(), ","))
	if err != nil {
		return fmt.Errorf("set monikers for %s: %w", file.Path(), err)
	}
	return nil
}

// GetDocument implements toc.DocumentProvider: a document exists as soon as
// it has a row, whether UpsertDocument or SetFileLevelMonikers created it; a
// row created only by SetFileLevelMonikers comes back with an empty
// ContentType.
func (s *Store) GetDocument(file toc.FilePath) (*toc.Document, bool) {
	var contentType string
	row := s.Conn.QueryRow(`SELECT content_type FROM documents WHERE path = ?`, file.Path())
	if err := row.Scan(&contentType); err != nil {
		return nil, false
	}
	return &toc.Document{FilePath: file, ContentType: contentType}, true
}

// GetFileLevelMonikers implements toc.MonikerProvider. An unknown or
// unrecorded document contributes the default (empty) moniker set rather
// than erroring; this mirrors how MonikerAggregator treats a node whose
// document is altogether unknown.
func (s *Store) GetFileLevelMonikers(ctx context.Context, sink toc.ErrorSink, file toc.FilePath) toc.MonikerList {
	var raw string
	row := s.Conn.QueryRow(`SELECT monikers FROM documents WHERE path = ?`, file.Path())
	if err := row.Scan(&raw); err != nil {
		if err != sql.ErrNoRows && sink != nil {
			sink.Emit(toc.Diagnostic{Kind: toc.DiagCollaboratorError, File: file, Message: "moniker lookup failed: " + err.Error()})
		}
		return toc.Default
	}
	if raw == "" {
		return toc.Default
	}
	return toc.NewMonikerList(strings.Split(raw, ",")...)
}

// AddDependencyItem implements toc.DependencyMapBuilder. Errors are logged
// through a side channel rather than returned, since the interface the toc
// package depends on has no error return: dependency recording is
// best-effort bookkeeping, not load-critical.
func (s *Store) AddDependencyItem(from, to toc.FilePath, kind, fromContentType string) {
	const q = `INSERT INTO dependencies (from_path, to_path, kind, from_content_type) VALUES (?, ?, ?, ?);`
	if _, err := s.Conn.Exec(q, from.Path(), to.Path(), kind, fromContentType); err != nil {
		s.logDependencyError(from, to, err)
	}
}

// DependencyEdge is one recorded row of the dependencies table.
type DependencyEdge struct {
	From, To        string
	Kind            string
	FromContentType string
}

// GetDependents returns every edge whose To matches path, e.g. for
// incremental-rebuild invalidation in a future build driver.
func (s *Store) GetDependents(path string) ([]DependencyEdge, error) {
	rows, err := s.Conn.Query(`SELECT from_path, to_path, kind, from_content_type FROM dependencies WHERE to_path = ?`, path)
	if err != nil {
		return nil, fmt.Errorf("query dependents of %s: %w", path, err)
	}
	defer rows.Close()

	var edges []DependencyEdge
	for rows.Next() {
		var e DependencyEdge
		if err := rows.Scan(&e.From, &e.To, &e.Kind, &e.FromContentType); err != nil {
			return nil, fmt.Errorf("scan dependency row: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
