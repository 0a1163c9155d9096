package toc_test

import (
	"context"
	"testing"

	"github.com/doctoolkit/tocloader/internal/toc"
	"github.com/doctoolkit/tocloader/internal/toc/testutil"
)

// S5: a join grafts the reference TOC's matching top-level items under the
// top-level TOC's pattern-bearing node; non-matching items are dropped.
func TestJoin_GraftsMatchingItems(t *testing.T) {
	parser := testutil.NewDummyParser()
	links := testutil.NewDummyLinkResolver()

	top := toc.NewFilePath("top.yml")
	ref := toc.NewFilePath("ref.yml")

	parser.Set(top.String(), &toc.TocNode{
		Items: []*toc.TocNode{
			{Name: "Guide", Children: []string{"Guide/*"}},
		},
	})
	parser.Set(ref.String(), &toc.TocNode{
		Items: []*toc.TocNode{
			{Name: "Guide/Intro"},
			{Name: "Guide/Setup"},
			{Name: "Other"},
		},
	})

	sys := toc.System{
		Parser:    parser,
		Links:     links,
		Xrefs:     testutil.NewDummyXrefResolver(),
		Monikers:  testutil.NewDummyMonikerProvider(),
		Validator: testutil.NewDummyValidator(),
		Deps:      testutil.NewDummyDependencyMapBuilder(),
		Sink:      &toc.CollectingErrorSink{},
		Joins: []toc.JoinEntry{
			{ReferenceToc: "ref.yml", TopLevelToc: "top.yml"},
		},
	}
	loader := toc.NewTocLoader(sys)

	result, err := loader.Load(context.Background(), ref)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(result.Node.Items) != 1 {
		t.Fatalf("expected root to be top.yml's single node, got %d items", len(result.Node.Items))
	}
	guide := result.Node.Items[0]
	if guide.Name != "Guide" {
		t.Fatalf("expected grafted tree to be top.yml's Guide node, got %q", guide.Name)
	}
	if len(guide.Items) != 2 {
		t.Fatalf("expected 2 grafted items under Guide, got %d: %+v", len(guide.Items), guide.Items)
	}
	names := map[string]bool{guide.Items[0].Name: true, guide.Items[1].Name: true}
	if !names["Guide/Intro"] || !names["Guide/Setup"] {
		t.Errorf("expected Guide/Intro and Guide/Setup grafted, got %+v", names)
	}
	if names["Other"] {
		t.Errorf("Other must not be grafted")
	}

	// A plain Load of top.yml must come back exactly as parsed, with no
	// items grafted onto its Guide node - the join mutated a clone, not the
	// tree MemoCache published for top.yml itself.
	topResult, err := loader.Load(context.Background(), top)
	if err != nil {
		t.Fatalf("Load(top.yml) failed: %v", err)
	}
	topGuide := topResult.Node.Items[0]
	if len(topGuide.Items) != 0 {
		t.Errorf("top.yml's own cached Guide node must stay unmodified by the join, got %+v", topGuide.Items)
	}
}
