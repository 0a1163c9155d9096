// Package toc implements the table-of-contents loader: it resolves a tree of
// TOC source files into a fully materialized, link-resolved graph.
package toc

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FilePath identifies a TOC or content file. Two FilePaths are the same
// cache key only if both their normalized path and revision discriminator
// match, so a working-tree file and its git-history revision are distinct
// entries even when the path string is identical.
type FilePath struct {
	path        string
	isGitCommit bool
	commitish   string
}

// NewFilePath builds a working-tree FilePath from a normalized path.
func NewFilePath(path string) FilePath {
	return FilePath{path: normalizePath(path)}
}

// NewGitCommitFilePath builds a FilePath referring to a path as it existed
// in a historical git revision.
func NewGitCommitFilePath(path, commitish string) FilePath {
	return FilePath{path: normalizePath(path), isGitCommit: true, commitish: commitish}
}

// String returns the normalized string form used as the cache key.
func (f FilePath) String() string {
	if f.isGitCommit {
		return fmt.Sprintf("%s@%s", f.path, f.commitish)
	}
	return f.path
}

// Path returns the normalized path component, without the revision.
func (f FilePath) Path() string { return f.path }

// IsGitCommit reports whether this FilePath names a historical revision
// rather than the working tree.
func (f FilePath) IsGitCommit() bool { return f.isGitCommit }

func (f FilePath) IsZero() bool { return f.path == "" && !f.isGitCommit }

// Document is the opaque handle returned by the external document registry.
type Document struct {
	FilePath    FilePath
	ContentType string
}

// MonikerList is an immutable set of version identifiers. The zero value is
// Default: the empty set, meaning "not narrowed relative to the parent".
type MonikerList struct {
	values map[string]struct{}
}

// Default is the empty MonikerList.
var Default = MonikerList{}

// NewMonikerList builds a MonikerList from the given identifiers.
func NewMonikerList(ids ...string) MonikerList {
	if len(ids) == 0 {
		return Default
	}
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return MonikerList{values: m}
}

// IsDefault reports whether this is the empty moniker list.
func (m MonikerList) IsDefault() bool { return len(m.values) == 0 }

// Equal reports whether two moniker lists contain the same identifiers.
func (m MonikerList) Equal(other MonikerList) bool {
	if len(m.values) != len(other.values) {
		return false
	}
	for id := range m.values {
		if _, ok := other.values[id]; !ok {
			return false
		}
	}
	return true
}

// Union returns the set union of m and other.
func (m MonikerList) Union(other MonikerList) MonikerList {
	if len(m.values) == 0 {
		return other
	}
	if len(other.values) == 0 {
		return m
	}
	merged := make(map[string]struct{}, len(m.values)+len(other.values))
	for id := range m.values {
		merged[id] = struct{}{}
	}
	for id := range other.values {
		merged[id] = struct{}{}
	}
	return MonikerList{values: merged}
}

// Slice returns the sorted identifiers, for display/serialization.
func (m MonikerList) Slice() []string {
	out := make([]string, 0, len(m.values))
	for id := range m.values {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the moniker list as a plain JSON array of identifiers.
func (m MonikerList) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Slice())
}

// TocHrefKind classifies a raw href string.
type TocHrefKind int

const (
	KindNone TocHrefKind = iota
	KindAbsolutePath
	KindRelativeFile
	KindRelativeFolder
	KindTocFile
)

func (k TocHrefKind) String() string {
	switch k {
	case KindAbsolutePath:
		return "AbsolutePath"
	case KindRelativeFile:
		return "RelativeFile"
	case KindRelativeFolder:
		return "RelativeFolder"
	case KindTocFile:
		return "TocFile"
	default:
		return "None"
	}
}

// IsTocIncludeHref reports whether kind references another TOC (either a
// folder to probe or an explicit TOC file name).
func IsTocIncludeHref(kind TocHrefKind) bool {
	return kind == KindTocFile || kind == KindRelativeFolder
}

// SourceLocation is a diagnostic locator: file, line, and column.
type SourceLocation struct {
	File   FilePath
	Line   int
	Column int
}

// TocNode is an in-memory node of a resolved (or input, pre-resolution) TOC
// tree.
type TocNode struct {
	Name      string `json:"name,omitempty"`
	Href      string `json:"href,omitempty"`
	TocHref   string `json:"tocHref,omitempty"`
	TopicHref string `json:"topicHref,omitempty"`
	UID       string `json:"uid,omitempty"`
	Homepage  string `json:"homepage,omitempty"`

	Document *Document   `json:"document,omitempty"`
	Monikers MonikerList `json:"monikers,omitempty"`

	Items []*TocNode `json:"items,omitempty"`

	// Children holds glob patterns for a join-reference slot; populated
	// only on top-level nodes consumed by JoinTocMerger.
	Children []string `json:"children,omitempty"`

	Source SourceLocation `json:"-"`
}

// Clone returns a deep copy of the node and every descendant, so that
// mutating the clone (or any of its descendants) never reaches back into
// the original tree. Used by the join merger, which needs to append into
// and recurse through descendant Items without disturbing a tree that may
// be shared out of MemoCache.
func (n *TocNode) Clone() *TocNode {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Items = make([]*TocNode, len(n.Items))
	for i, item := range n.Items {
		clone.Items[i] = item.Clone()
	}
	clone.Children = append([]string(nil), n.Children...)
	return &clone
}

// JoinConfig maps a normalized referenceToc path to an optional
// topLevelToc path.
type JoinConfig struct {
	entries map[string]string
}

// JoinEntry is one configured join: a reference TOC and the top-level TOC
// its items should be grafted into.
type JoinEntry struct {
	ReferenceToc string
	TopLevelToc  string
}

// NewJoinConfig indexes entries by normalized referenceToc path. Entries
// with an empty ReferenceToc are ignored.
func NewJoinConfig(entries []JoinEntry) JoinConfig {
	cfg := JoinConfig{entries: make(map[string]string)}
	for _, e := range entries {
		if e.ReferenceToc == "" {
			continue
		}
		cfg.entries[normalizePath(e.ReferenceToc)] = e.TopLevelToc
	}
	return cfg
}

// TopLevelFor returns the configured topLevelToc for a normalized
// referenceToc path, and whether an entry exists at all.
func (c JoinConfig) TopLevelFor(referenceToc string) (string, bool) {
	top, ok := c.entries[normalizePath(referenceToc)]
	return top, ok
}

func normalizePath(p string) string {
	// Path comparison is platform-appropriate; the loader normalizes to
	// forward slashes and lower-cases reserved-name comparisons happen
	// separately in HrefClassifier.
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' {
			out[i] = '/'
		} else {
			out[i] = p[i]
		}
	}
	return string(out)
}
