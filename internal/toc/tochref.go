package toc

import (
	"context"
	"path"
)

// tocProbeNames is the probe order for a RelativeFolder href.
var tocProbeNames = []string{"TOC.md", "TOC.json", "TOC.yml"}

// TocHrefResolver locates the TOC file a classified TOC href points at.
type TocHrefResolver struct {
	Links LinkResolver
	Sink  ErrorSink
}

// Resolve locates the document a classified TOC href points at. It is only
// ever called with kind RelativeFolder or TocFile; other kinds return nil
// without side effects.
func (r *TocHrefResolver) Resolve(ctx context.Context, currentFile FilePath, href string, kind TocHrefKind, referencedTocs *[]*Document) *Document {
	switch kind {
	case KindRelativeFolder:
		return r.resolveFolder(ctx, currentFile, href)
	case KindTocFile:
		return r.resolveTocFile(ctx, currentFile, href, referencedTocs)
	default:
		return nil
	}
}

func (r *TocHrefResolver) resolveFolder(ctx context.Context, currentFile FilePath, href string) *Document {
	var firstGitCommitHit *Document

	for _, name := range tocProbeNames {
		probePath := path.Join(href, name)
		doc, err := r.Links.ResolveContent(ctx, probePath, currentFile)
		if err != nil || doc == nil {
			continue
		}
		if !doc.FilePath.IsGitCommit() {
			return doc
		}
		if firstGitCommitHit == nil {
			firstGitCommitHit = doc
		}
	}

	// FileNotFound fires only when no probe produced a document at all, even
	// a git-commit one - a git-commit-only hit suppresses the error and is
	// returned instead.
	if firstGitCommitHit == nil {
		r.Sink.Emit(Diagnostic{Kind: DiagFileNotFound, File: currentFile, Message: "no TOC found in folder", Detail: href})
		return nil
	}
	return firstGitCommitHit
}

func (r *TocHrefResolver) resolveTocFile(ctx context.Context, currentFile FilePath, href string, referencedTocs *[]*Document) *Document {
	doc, err := r.Links.ResolveContent(ctx, href, currentFile)
	if err != nil {
		r.Sink.Emit(Diagnostic{Kind: DiagCollaboratorError, File: currentFile, Message: err.Error(), Detail: href})
	}
	if doc != nil && referencedTocs != nil {
		*referencedTocs = append(*referencedTocs, doc)
	}
	return doc
}
