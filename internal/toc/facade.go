package toc

import "context"

// System bundles the external collaborators a TocLoader needs.
// Callers assemble one of these from their own concrete adapters
// (internal/parse, internal/store, internal/diagnostic, ...) and hand it to
// NewTocLoader.
type System struct {
	Parser     Parser
	Links      LinkResolver
	Xrefs      XrefResolver
	Monikers   MonikerProvider
	Validator  ContentValidator
	Deps       DependencyMapBuilder
	Documents  DocumentProvider
	Sink       ErrorSink
	Joins      []JoinEntry
}

// TocLoader is the package's single public entry point: load
// a root TOC file into a fully resolved tree.
type TocLoader struct {
	loader *TocFileLoader
}

// NewTocLoader wires the classifier, href resolvers, moniker aggregator,
// node resolver, join merger, and memo cache into one loader, resolving the
// mutual dependency between NodeResolver and TocFileLoader by constructing
// both empty-shelled and then filling in the back-reference.
func NewTocLoader(sys System) *TocLoader {
	sink := sys.Sink
	if sink == nil {
		sink = NopErrorSink{}
	}

	classifier := NewHrefClassifier()
	tocHrefs := &TocHrefResolver{Links: sys.Links, Sink: sink}
	aggregator := &MonikerAggregator{Provider: sys.Monikers, Sink: sink}

	resolver := &NodeResolver{
		Classifier: classifier,
		TocHrefs:   tocHrefs,
		Links:      sys.Links,
		Xrefs:      sys.Xrefs,
		Monikers:   sys.Monikers,
		Aggregator: aggregator,
		Validator:  sys.Validator,
		Deps:       sys.Deps,
		Sink:       sink,
	}

	fileLoader := &TocFileLoader{
		Parser:    sys.Parser,
		Resolver:  resolver,
		Validator: sys.Validator,
		Sink:      sink,
		Memo:      NewMemoCache(),
		Joins:     NewJoinConfig(sys.Joins),
	}
	fileLoader.Merger = &JoinTocMerger{Loader: fileLoader, Sink: sink}
	resolver.Loader = fileLoader

	return &TocLoader{loader: fileLoader}
}

// Load resolves file as a root TOC: a fresh, empty RecursionGuard, its own
// referencedFiles/referencedTocs side-tables, and the configured join
// grafted in if file matches a configured referenceToc.
func (l *TocLoader) Load(ctx context.Context, file FilePath) (*LoadResult, error) {
	return l.loader.Load(ctx, file, RecursionGuard{})
}

// Evict drops file's cached result, forcing the next Load to recompute it.
func (l *TocLoader) Evict(file FilePath) {
	l.loader.Memo.Evict(file.String())
}

// CachedKeys returns the file paths currently memoized.
func (l *TocLoader) CachedKeys() []string {
	return l.loader.Memo.Keys()
}
