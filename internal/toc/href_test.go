package toc_test

import (
	"testing"

	"github.com/doctoolkit/tocloader/internal/toc"
)

func TestHrefClassifier_Classify(t *testing.T) {
	c := toc.NewHrefClassifier()

	cases := []struct {
		href string
		want toc.TocHrefKind
	}{
		{"", toc.KindNone},
		{"https://example.com/x", toc.KindAbsolutePath},
		{"/abs/path.md", toc.KindAbsolutePath},
		{"a.md", toc.KindRelativeFile},
		{"sub/", toc.KindRelativeFolder},
		{"sub/TOC.md", toc.KindTocFile},
		{"sub/toc.yml", toc.KindTocFile},
		{"sub/TOC.experimental.json", toc.KindTocFile},
		{"sub/readme.md?x=1#frag", toc.KindRelativeFile},
	}
	for _, tc := range cases {
		got := c.Classify(tc.href)
		if got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.href, got, tc.want)
		}
	}
}

func TestIsTocIncludeHref(t *testing.T) {
	if !toc.IsTocIncludeHref(toc.KindTocFile) {
		t.Error("TocFile should be a TOC-include kind")
	}
	if !toc.IsTocIncludeHref(toc.KindRelativeFolder) {
		t.Error("RelativeFolder should be a TOC-include kind")
	}
	if toc.IsTocIncludeHref(toc.KindRelativeFile) {
		t.Error("RelativeFile must not be a TOC-include kind")
	}
	if toc.IsTocIncludeHref(toc.KindAbsolutePath) {
		t.Error("AbsolutePath must not be a TOC-include kind")
	}
}
