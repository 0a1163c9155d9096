package parse_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doctoolkit/tocloader/internal/parse"
	"github.com/doctoolkit/tocloader/internal/toc"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFileParser_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "TOC.yml", `
- name: Intro
  href: intro.md
- name: Sub
  tocHref: sub/TOC.yml
  children:
    - "Guide/*"
`)

	p := &parse.FileParser{Root: dir}
	node, err := p.Parse(context.Background(), toc.NewFilePath("TOC.yml"), toc.NopErrorSink{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(node.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(node.Items))
	}
	if node.Items[0].Name != "Intro" || node.Items[0].Href != "intro.md" {
		t.Errorf("unexpected item 0: %+v", node.Items[0])
	}
	if node.Items[1].TocHref != "sub/TOC.yml" || len(node.Items[1].Children) != 1 {
		t.Errorf("unexpected item 1: %+v", node.Items[1])
	}
}

func TestFileParser_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "TOC.json", `[{"name": "Intro", "href": "intro.md"}]`)

	p := &parse.FileParser{Root: dir}
	node, err := p.Parse(context.Background(), toc.NewFilePath("TOC.json"), toc.NopErrorSink{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(node.Items) != 1 || node.Items[0].Name != "Intro" {
		t.Fatalf("unexpected result: %+v", node.Items)
	}
}

func TestFileParser_MissingFile(t *testing.T) {
	p := &parse.FileParser{Root: t.TempDir()}
	if _, err := p.Parse(context.Background(), toc.NewFilePath("missing.yml"), toc.NopErrorSink{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
