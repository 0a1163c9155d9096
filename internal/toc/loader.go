package toc

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// NodeLoader is the narrow surface NodeResolver needs back from
// TocFileLoader: recursing into a brand-new TOC file (TOC-include hrefs),
// and fanning out over a list of same-file sibling items. Splitting this
// out avoids a literal circular struct definition while keeping the two
// components exactly as describes their collaboration.
type NodeLoader interface {
	Load(ctx context.Context, file FilePath, guard RecursionGuard) (*LoadResult, error)
	ResolveSiblings(ctx context.Context, items []*TocNode, currentFile, rootFile FilePath, guard RecursionGuard, referencedFiles, referencedTocs *[]*Document) ([]*TocNode, error)
}

// TocFileLoader parses one TOC file and recursively expands its children in
// parallel.
type TocFileLoader struct {
	Parser    Parser
	Resolver  *NodeResolver
	Validator ContentValidator
	Sink      ErrorSink
	Memo      *MemoCache
	Joins     JoinConfig
	Merger    *JoinTocMerger
}

// Load is the memoized, cycle-checked entry point used both by the façade
// (with an empty guard) and by NodeResolver for TOC-include hrefs (with the
// caller's current guard). The cycle check happens unconditionally, before
// consulting the cache, because it reflects the current chain's ancestry and
// not a property of the file itself.
func (l *TocFileLoader) Load(ctx context.Context, file FilePath, guard RecursionGuard) (*LoadResult, error) {
	nextGuard, err := guard.Push(file)
	if err != nil {
		if cre, ok := err.(*CircularReferenceError); ok {
			l.Sink.Emit(Diagnostic{Kind: DiagCircularReference, File: file, Message: cre.Error()})
		}
		return nil, err
	}

	return l.Memo.GetOrCompute(file.String(), func() (*LoadResult, error) {
		return l.computeAndJoin(ctx, file, nextGuard)
	})
}

func (l *TocFileLoader) computeAndJoin(ctx context.Context, file FilePath, guard RecursionGuard) (*LoadResult, error) {
	node, referencedFiles, referencedTocs, err := l.loadTocFile(ctx, file, guard)
	if err != nil {
		return nil, err
	}

	if topLevel, ok := l.Joins.TopLevelFor(file.Path()); ok && topLevel != "" && l.Merger != nil {
		merged, err := l.Merger.Merge(ctx, node, NewFilePath(topLevel))
		if err != nil {
			l.Sink.Emit(Diagnostic{Kind: DiagCollaboratorError, File: file, Message: "join merge failed: " + err.Error()})
		} else {
			node = merged
		}
	}

	return &LoadResult{Node: node, ReferencedFiles: referencedFiles, ReferencedTocs: referencedTocs}, nil
}

// loadTocFile parses a single file and resolves its children, then runs
// root-only duplicate validation. file is its own rootFile:
// every call to Load (façade-level or nested TOC-include) establishes a
// fresh, independent root and a fresh pair of side-tables.
func (l *TocFileLoader) loadTocFile(ctx context.Context, file FilePath, guard RecursionGuard) (*TocNode, []*Document, []*Document, error) {
	var referencedFiles, referencedTocs []*Document

	input, err := l.Parser.Parse(ctx, file, l.Sink)
	if err != nil {
		return nil, nil, nil, err
	}

	items, err := l.ResolveSiblings(ctx, input.Items, file, file, guard, &referencedFiles, &referencedTocs)
	if err != nil {
		return nil, nil, nil, err
	}

	resolved := &TocNode{
		Name:     input.Name,
		Href:     input.Href,
		Homepage: input.Homepage,
		Document: input.Document,
		Items:    items,
		Children: input.Children,
		Source:   input.Source,
	}

	if l.Validator != nil {
		l.Validator.ValidateTocEntryDuplicated(file, referencedFiles)
	}

	return resolved, referencedFiles, referencedTocs, nil
}

// ResolveSiblings fans out resolution over items, one worker per sibling,
// writing results into a pre-sized positional buffer so output order
// matches input order regardless
// of completion order. Each worker accumulates into its own scratch
// referencedFiles/referencedTocs lists, merged into the caller's lists under
// mutual exclusion once the worker finishes.
func (l *TocFileLoader) ResolveSiblings(ctx context.Context, items []*TocNode, currentFile, rootFile FilePath, guard RecursionGuard, referencedFiles, referencedTocs *[]*Document) ([]*TocNode, error) {
	if len(items) == 0 {
		return nil, nil
	}

	results := make([]*TocNode, len(items))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			var scratchFiles, scratchTocs []*Document
			resolved, err := l.Resolver.Resolve(gctx, item, currentFile, rootFile, guard.Snapshot(), &scratchFiles, &scratchTocs)
			if err != nil {
				return err
			}
			results[i] = resolved

			mu.Lock()
			*referencedFiles = append(*referencedFiles, scratchFiles...)
			*referencedTocs = append(*referencedTocs, scratchTocs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
