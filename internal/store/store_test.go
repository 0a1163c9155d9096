package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/doctoolkit/tocloader/internal/store"
	"github.com/doctoolkit/tocloader/internal/toc"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return s
}

func closeTestStore(t *testing.T, s *store.Store) {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Errorf("failed to close test store: %v", err)
	}
}

func TestStoreSetup(t *testing.T) {
	s := openTestStore(t)
	defer closeTestStore(t, s)

	if err := verifyTableExists(s.Conn, "documents"); err != nil {
		t.Errorf("documents table verification failed: %v", err)
	}
	if err := verifyTableExists(s.Conn, "dependencies"); err != nil {
		t.Errorf("dependencies table verification failed: %v", err)
	}

	var version int
	if err := s.Conn.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != store.SchemaVersion {
		t.Errorf("expected schema version %d, got %d", store.SchemaVersion, version)
	}
}

func verifyTableExists(conn *sql.DB, name string) error {
	row := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?;`, name)
	var got string
	return row.Scan(&got)
}

func TestUpsertAndGetDocument(t *testing.T) {
	s := openTestStore(t)
	defer closeTestStore(t, s)

	file := toc.NewFilePath("a.md")
	if err := s.UpsertDocument(file, "markdown", []byte("checksum")); err != nil {
		t.Fatalf("UpsertDocument failed: %v", err)
	}

	doc, ok := s.GetDocument(file)
	if !ok {
		t.Fatal("expected document to be found")
	}
	if doc.ContentType != "markdown" {
		t.Errorf("expected content type markdown, got %q", doc.ContentType)
	}

	if _, ok := s.GetDocument(toc.NewFilePath("missing.md")); ok {
		t.Error("expected missing.md to not be found")
	}

	// Upsert again updates in place rather than erroring on the unique path.
	if err := s.UpsertDocument(file, "markdown", []byte("checksum2")); err != nil {
		t.Fatalf("second UpsertDocument failed: %v", err)
	}
}

func TestFileLevelMonikers(t *testing.T) {
	s := openTestStore(t)
	defer closeTestStore(t, s)

	file := toc.NewFilePath("a.md")
	sink := &toc.CollectingErrorSink{}

	// Unrecorded document falls back to Default rather than erroring.
	got := s.GetFileLevelMonikers(context.Background(), sink, file)
	if !got.IsDefault() {
		t.Errorf("expected default monikers for unrecorded document, got %v", got.Slice())
	}
	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}

	want := toc.NewMonikerList("v1", "v2")
	if err := s.SetFileLevelMonikers(file, want); err != nil {
		t.Fatalf("SetFileLevelMonikers failed: %v", err)
	}
	got = s.GetFileLevelMonikers(context.Background(), sink, file)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want.Slice(), got.Slice())
	}
}

func TestAddDependencyItemAndGetDependents(t *testing.T) {
	s := openTestStore(t)
	defer closeTestStore(t, s)

	from := toc.NewFilePath("root.yml")
	to := toc.NewFilePath("sub/first.md")
	s.AddDependencyItem(from, to, "tocInclusion", "toc")

	edges, err := s.GetDependents(to.Path())
	if err != nil {
		t.Fatalf("GetDependents failed: %v", err)
	}
	if len(edges) != 1 || edges[0].From != from.Path() || edges[0].Kind != "tocInclusion" {
		t.Errorf("unexpected dependents: %+v", edges)
	}
}
