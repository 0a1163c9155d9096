package diagnostic_test

import (
	"testing"

	"github.com/doctoolkit/tocloader/internal/diagnostic"
	"github.com/doctoolkit/tocloader/internal/toc"
)

func TestSink_CollectsAndAggregates(t *testing.T) {
	s := diagnostic.New()

	s.Emit(toc.Diagnostic{Kind: toc.DiagFileNotFound, File: toc.NewFilePath("a.yml"), Message: "no TOC found"})
	s.Emit(toc.Diagnostic{Kind: toc.DiagMissingAttribute, File: toc.NewFilePath("b.yml"), Message: "missing attribute"})

	diags := s.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	if err := s.Err(); err == nil {
		t.Fatal("expected a non-nil combined error")
	}
}

func TestSink_EmptyHasNoError(t *testing.T) {
	s := diagnostic.New()
	if err := s.Err(); err != nil {
		t.Fatalf("expected nil error for an empty sink, got %v", err)
	}
}
