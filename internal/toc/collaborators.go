package toc

import "context"

// Parser produces an input-level tree from a TOC source file. Parsing TOC
// file syntax is explicitly out of scope for this package;
// Parser is an external collaborator with a concrete implementation living in
// internal/parse.
type Parser interface {
	Parse(ctx context.Context, file FilePath, sink ErrorSink) (*TocNode, error)
}

// LinkResolver resolves hrefs and probes for content. Both methods are safe
// for concurrent use by multiple loader workers.
type LinkResolver interface {
	ResolveLink(ctx context.Context, href string, currentFile, rootFile FilePath) (resolvedHref string, document *Document, err error)
	ResolveContent(ctx context.Context, href string, currentFile FilePath) (document *Document, err error)
}

// XrefResolver resolves a UID reference to a link, a display name, and the
// document that declares it.
type XrefResolver interface {
	ResolveXrefByUid(ctx context.Context, uid string, currentFile, rootFile FilePath, monikers MonikerList) (link, displayName string, declaringFile *Document, err error)
}

// MonikerProvider supplies the file-level moniker set for a document.
type MonikerProvider interface {
	GetFileLevelMonikers(ctx context.Context, sink ErrorSink, file FilePath) MonikerList
}

// ContentValidator runs auxiliary validations that are recorded through the
// ErrorSink rather than returned.
type ContentValidator interface {
	ValidateTocBreadcrumbLinkExternal(file FilePath, node *TocNode)
	ValidateTocEntryDuplicated(file FilePath, referencedFiles []*Document)
}

// DependencyMapBuilder records a build dependency edge.
type DependencyMapBuilder interface {
	AddDependencyItem(from, to FilePath, kind string, fromContentType string)
}

// DocumentProvider looks up the document handle for a file path.
type DocumentProvider interface {
	GetDocument(file FilePath) (*Document, bool)
}

// DiagnosticKind enumerates the error kinds the loader can emit.
type DiagnosticKind int

const (
	DiagCircularReference DiagnosticKind = iota
	DiagInvalidTocHref
	DiagInvalidTopicHref
	DiagFileNotFound
	DiagMissingAttribute
	DiagCollaboratorError
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagCircularReference:
		return "CircularReference"
	case DiagInvalidTocHref:
		return "InvalidTocHref"
	case DiagInvalidTopicHref:
		return "InvalidTopicHref"
	case DiagFileNotFound:
		return "FileNotFound"
	case DiagMissingAttribute:
		return "MissingAttribute"
	default:
		return "CollaboratorError"
	}
}

// Diagnostic is one recorded error or warning.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    FilePath
	Message string
	Detail  string // e.g. the offending href, attribute name, or stack trace
}

func (d Diagnostic) Error() string {
	if d.Detail != "" {
		return d.Kind.String() + ": " + d.Message + " (" + d.Detail + ")"
	}
	return d.Kind.String() + ": " + d.Message
}

// ErrorSink accepts diagnostics. Implementations must be safe for concurrent
// use; internal/diagnostic provides the production implementation.
type ErrorSink interface {
	Emit(d Diagnostic)
}

// NopErrorSink discards every diagnostic. Useful in tests that only care
// about the resolved tree.
type NopErrorSink struct{}

func (NopErrorSink) Emit(Diagnostic) {}

// CollectingErrorSink accumulates diagnostics in a plain slice, without
// concurrency protection; it's only meant for single-goroutine tests. Use
// internal/diagnostic.Sink for anything running the loader's real,
// parallel fan-out.
type CollectingErrorSink struct {
	Diagnostics []Diagnostic
}

func (s *CollectingErrorSink) Emit(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}
