package toc_test

import (
	"testing"

	"github.com/doctoolkit/tocloader/internal/toc"
)

func TestRecursionGuard_PushDetectsCycle(t *testing.T) {
	var guard toc.RecursionGuard

	a := toc.NewFilePath("a.yml")
	b := toc.NewFilePath("b.yml")

	guard, err := guard.Push(a)
	if err != nil {
		t.Fatalf("unexpected error pushing a: %v", err)
	}
	guard, err = guard.Push(b)
	if err != nil {
		t.Fatalf("unexpected error pushing b: %v", err)
	}
	if _, err := guard.Push(a); err == nil {
		t.Fatal("expected CircularReferenceError pushing a again")
	} else if _, ok := err.(*toc.CircularReferenceError); !ok {
		t.Fatalf("expected *CircularReferenceError, got %T", err)
	}
}

func TestRecursionGuard_SnapshotIsolatesSiblings(t *testing.T) {
	var guard toc.RecursionGuard
	guard, err := guard.Push(toc.NewFilePath("root.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshotA := guard.Snapshot()
	snapshotB := guard.Snapshot()

	branchA, err := snapshotA.Push(toc.NewFilePath("child-a.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// snapshotB must not see branchA's push: pushing the same file on
	// snapshotB must still succeed.
	if _, err := snapshotB.Push(toc.NewFilePath("child-a.yml")); err != nil {
		t.Fatalf("sibling snapshot leaked branch A's push: %v", err)
	}
	_ = branchA
}
