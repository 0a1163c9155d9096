// Package testutil provides in-memory fakes for the external collaborator
// interfaces in internal/toc other than ErrorSink (internal/toc itself ships
// NopErrorSink and CollectingErrorSink), in the style of the dummy stores and managers
// used elsewhere in this module's tests: simple maps guarded by a mutex, no
// real I/O.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/doctoolkit/tocloader/internal/toc"
)

// DummyParser maps a file path string to a canned input tree.
type DummyParser struct {
	mu      sync.RWMutex
	Trees   map[string]*toc.TocNode
	ParseErr map[string]error
}

func NewDummyParser() *DummyParser {
	return &DummyParser{Trees: make(map[string]*toc.TocNode), ParseErr: make(map[string]error)}
}

func (p *DummyParser) Set(file string, node *toc.TocNode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Trees[file] = node
}

func (p *DummyParser) Parse(ctx context.Context, file toc.FilePath, sink toc.ErrorSink) (*toc.TocNode, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err, ok := p.ParseErr[file.String()]; ok {
		return nil, err
	}
	node, ok := p.Trees[file.String()]
	if !ok {
		return nil, fmt.Errorf("testutil: no tree registered for %s", file.String())
	}
	return node, nil
}

// DummyLinkResolver resolves hrefs and content probes from a pre-populated
// map, keyed by the literal href string passed in.
type DummyLinkResolver struct {
	mu        sync.RWMutex
	Links     map[string]linkEntry
	Contents  map[string]*toc.Document
	MissingOK bool
}

type linkEntry struct {
	href string
	doc  *toc.Document
}

func NewDummyLinkResolver() *DummyLinkResolver {
	return &DummyLinkResolver{
		Links:    make(map[string]linkEntry),
		Contents: make(map[string]*toc.Document),
	}
}

func (r *DummyLinkResolver) SetLink(href, resolvedHref string, doc *toc.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Links[href] = linkEntry{href: resolvedHref, doc: doc}
}

func (r *DummyLinkResolver) SetContent(href string, doc *toc.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Contents[href] = doc
}

func (r *DummyLinkResolver) ResolveLink(ctx context.Context, href string, currentFile, rootFile toc.FilePath) (string, *toc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.Links[href]
	if !ok {
		if r.MissingOK {
			return href, nil, nil
		}
		return "", nil, fmt.Errorf("testutil: no link registered for %q", href)
	}
	return e.href, e.doc, nil
}

func (r *DummyLinkResolver) ResolveContent(ctx context.Context, href string, currentFile toc.FilePath) (*toc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.Contents[href]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

// DummyXrefResolver resolves UIDs from a pre-populated map.
type DummyXrefResolver struct {
	mu      sync.RWMutex
	entries map[string]xrefEntry
}

type xrefEntry struct {
	link string
	name string
	doc  *toc.Document
}

func NewDummyXrefResolver() *DummyXrefResolver {
	return &DummyXrefResolver{entries: make(map[string]xrefEntry)}
}

func (x *DummyXrefResolver) Set(uid, link, name string, doc *toc.Document) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[uid] = xrefEntry{link: link, name: name, doc: doc}
}

func (x *DummyXrefResolver) ResolveXrefByUid(ctx context.Context, uid string, currentFile, rootFile toc.FilePath, monikers toc.MonikerList) (string, string, *toc.Document, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	e, ok := x.entries[uid]
	if !ok {
		return "", "", nil, fmt.Errorf("testutil: no xref registered for uid %q", uid)
	}
	return e.link, e.name, e.doc, nil
}

// DummyMonikerProvider returns a pre-populated file-level moniker set, or
// the Default set for any file it hasn't been told about.
type DummyMonikerProvider struct {
	mu    sync.RWMutex
	ByFile map[string]toc.MonikerList
}

func NewDummyMonikerProvider() *DummyMonikerProvider {
	return &DummyMonikerProvider{ByFile: make(map[string]toc.MonikerList)}
}

func (m *DummyMonikerProvider) Set(file string, monikers toc.MonikerList) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByFile[file] = monikers
}

func (m *DummyMonikerProvider) GetFileLevelMonikers(ctx context.Context, sink toc.ErrorSink, file toc.FilePath) toc.MonikerList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ByFile[file.String()]
}

// DummyValidator records every call it receives instead of validating
// anything for real.
type DummyValidator struct {
	mu                sync.Mutex
	BreadcrumbCalls   []toc.FilePath
	DuplicateCalls    []toc.FilePath
}

func NewDummyValidator() *DummyValidator { return &DummyValidator{} }

func (v *DummyValidator) ValidateTocBreadcrumbLinkExternal(file toc.FilePath, node *toc.TocNode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.BreadcrumbCalls = append(v.BreadcrumbCalls, file)
}

func (v *DummyValidator) ValidateTocEntryDuplicated(file toc.FilePath, referencedFiles []*toc.Document) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.DuplicateCalls = append(v.DuplicateCalls, file)
}

// DependencyEdge is one recorded AddDependencyItem call.
type DependencyEdge struct {
	From, To        toc.FilePath
	Kind            string
	FromContentType string
}

// DummyDependencyMapBuilder records dependency edges in a plain slice.
type DummyDependencyMapBuilder struct {
	mu    sync.Mutex
	Edges []DependencyEdge
}

func NewDummyDependencyMapBuilder() *DummyDependencyMapBuilder {
	return &DummyDependencyMapBuilder{}
}

func (d *DummyDependencyMapBuilder) AddDependencyItem(from, to toc.FilePath, kind, fromContentType string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Edges = append(d.Edges, DependencyEdge{From: from, To: to, Kind: kind, FromContentType: fromContentType})
}

// DummyDocumentProvider looks up documents from a pre-populated map.
type DummyDocumentProvider struct {
	mu   sync.RWMutex
	docs map[string]*toc.Document
}

func NewDummyDocumentProvider() *DummyDocumentProvider {
	return &DummyDocumentProvider{docs: make(map[string]*toc.Document)}
}

func (p *DummyDocumentProvider) Set(file string, doc *toc.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs[file] = doc
}

func (p *DummyDocumentProvider) GetDocument(file toc.FilePath) (*toc.Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.docs[file.String()]
	return doc, ok
}
