package toc

import "context"

// MonikerAggregator computes a node's effective moniker set as the union of
// its own file-level monikers and its children's aggregated monikers, then
// collapses redundant inheritance.
type MonikerAggregator struct {
	Provider MonikerProvider
	URLs     UrlUtility
	Sink     ErrorSink
}

// Aggregate implements the three-step algorithm: build contributions, union
// them, then reset any child whose own monikers equal the union back to
// Default.
func (a *MonikerAggregator) Aggregate(ctx context.Context, node *TocNode) MonikerList {
	urls := a.URLs
	if urls == nil {
		urls = DefaultUrlUtility{}
	}

	union := Default
	if node.Href != "" {
		switch urls.Classify(node.Href) {
		case UrlTypeExternal, UrlTypeAbsolutePath:
			// contributes Default; nothing to union.
		default:
			if node.Document != nil && a.Provider != nil {
				union = union.Union(a.Provider.GetFileLevelMonikers(ctx, a.Sink, node.Document.FilePath))
			}
		}
	}
	for _, child := range node.Items {
		union = union.Union(child.Monikers)
	}

	for _, child := range node.Items {
		if child.Monikers.Equal(union) {
			child.Monikers = Default
		}
	}

	return union
}
