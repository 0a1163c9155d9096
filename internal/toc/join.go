package toc

import (
	"context"
	"path/filepath"
)

// JoinTocMerger grafts a reference TOC's top-level items into the matching
// glob slots of a top-level TOC's Children entries. A "join"
// lets one repo's TOC reuse another repo's section without duplicating it
// by hand.
type JoinTocMerger struct {
	Loader NodeLoader
	Sink   ErrorSink
}

// Merge loads topLevel and walks it in pre-order; at each node, every
// pattern in node.Children is matched against the reference TOC's own
// top-level items (referenceNode.Items), and any item not yet claimed by an
// earlier pattern or an earlier-visited node is appended to that node's
// Items. First match wins across both axes. A grafted item is itself
// walked afterward, so its own Children patterns can claim further
// reference items in turn. topLevel's tree is deep-cloned first so the
// graft never mutates the shared tree MemoCache has published for it.
func (m *JoinTocMerger) Merge(ctx context.Context, referenceNode *TocNode, topLevel FilePath) (*TocNode, error) {
	result, err := m.Loader.Load(ctx, topLevel, RecursionGuard{})
	if err != nil {
		return nil, err
	}

	merged := result.Node.Clone()
	matched := make([]bool, len(referenceNode.Items))
	spliceChildren(merged, referenceNode.Items, matched)
	return merged, nil
}

func spliceChildren(node *TocNode, items []*TocNode, matched []bool) {
	if node == nil {
		return
	}

	for _, pattern := range node.Children {
		for i, item := range items {
			if matched[i] {
				continue
			}
			if ok, err := filepath.Match(pattern, item.Name); err == nil && ok {
				node.Items = append(node.Items, item)
				matched[i] = true
			}
		}
	}

	// Recurses over node.Items as it stands after the graft above, so a
	// freshly grafted item's own Children patterns get their turn to match
	// remaining reference items, the same as any original child's would.
	for _, child := range node.Items {
		spliceChildren(child, items, matched)
	}
}
