package toc

import "context"

// NodeResolver resolves a single input TOC node into its final, published
// form: topic/toc/uid links, a display name, and an aggregated moniker set
//.
type NodeResolver struct {
	Classifier *HrefClassifier
	TocHrefs   *TocHrefResolver
	Links      LinkResolver
	Xrefs      XrefResolver
	Monikers   MonikerProvider
	Aggregator *MonikerAggregator
	Validator  ContentValidator
	Deps       DependencyMapBuilder
	Sink       ErrorSink

	// Loader is injected after construction by whatever wires the package
	// together (see NewTocLoader); it closes the mutual recursion between
	// NodeResolver and TocFileLoader described in flow.
	Loader NodeLoader
}

// tocHrefOutcome is the intermediate result of processTocHref.
type tocHrefOutcome struct {
	resolvedTocHref      string     // set only for an AbsolutePath tocHref; highest-precedence href
	subChildrenFirstItem string     // the included tree's first item's href; lowest-precedence fallback
	items                []*TocNode // non-nil only for a TocFile-kind include: replaces the node's own items
	firstItemDocument    *Document  // the included tree's first item's document, for both TocFile and RelativeFolder kinds
}

// Resolve turns one input node into its resolved form end to end.
func (r *NodeResolver) Resolve(ctx context.Context, input *TocNode, currentFile, rootFile FilePath, guard RecursionGuard, referencedFiles, referencedTocs *[]*Document) (*TocNode, error) {
	tocHref, tocKind := r.deriveTocHref(input, currentFile)
	topicHref := r.deriveTopicHref(input, currentFile)

	if r.Validator != nil {
		r.Validator.ValidateTocBreadcrumbLinkExternal(currentFile, input)
	}

	outcome, err := r.processTocHref(ctx, currentFile, rootFile, guard, tocHref, tocKind, referencedFiles, referencedTocs)
	if err != nil {
		return nil, err
	}

	isTocIncludeBranch := tocHref != "" && IsTocIncludeHref(tocKind)
	resolvedHref, displayName, topicDoc := r.processTopicItem(ctx, currentFile, rootFile, topicHref, input.UID, !isTocIncludeBranch, referencedFiles)

	var items []*TocNode
	if outcome.items != nil {
		items = outcome.items
	} else if len(input.Items) > 0 {
		items, err = r.Loader.ResolveSiblings(ctx, input.Items, currentFile, rootFile, guard, referencedFiles, referencedTocs)
		if err != nil {
			return nil, err
		}
	}

	href := firstNonEmpty(outcome.resolvedTocHref, resolvedHref, outcome.subChildrenFirstItem)
	homepage := ""
	if input.Href == "" && input.TopicHref != "" {
		homepage = resolvedHref
	}
	name := input.Name
	if name == "" {
		name = displayName
	}
	document := topicDoc
	if document == nil {
		document = outcome.firstItemDocument
	}

	resolved := &TocNode{
		Name:     name,
		Href:     href,
		Homepage: homepage,
		Document: document,
		Items:    items,
		Children: input.Children,
		Source:   input.Source,
	}
	resolved.Monikers = r.Aggregator.Aggregate(ctx, resolved)

	if resolved.Name == "" {
		r.Sink.Emit(Diagnostic{Kind: DiagMissingAttribute, File: currentFile, Message: "missing attribute", Detail: "name"})
	}

	return resolved, nil
}

// deriveTocHref picks the href to treat as this node's TOC-include, preferring
// tocHref over href when both are present.
func (r *NodeResolver) deriveTocHref(input *TocNode, currentFile FilePath) (string, TocHrefKind) {
	if input.TocHref != "" {
		kind := r.Classifier.Classify(input.TocHref)
		if IsTocIncludeHref(kind) || kind == KindAbsolutePath {
			return input.TocHref, kind
		}
		r.Sink.Emit(Diagnostic{Kind: DiagInvalidTocHref, File: currentFile, Message: "invalid tocHref kind " + kind.String(), Detail: input.TocHref})
	}
	if input.Href != "" {
		kind := r.Classifier.Classify(input.Href)
		if IsTocIncludeHref(kind) {
			return input.Href, kind
		}
	}
	return "", KindNone
}

// deriveTopicHref picks the href to treat as this node's topic link, falling
// back from topicHref to href when href isn't itself a TOC-include.
func (r *NodeResolver) deriveTopicHref(input *TocNode, currentFile FilePath) string {
	if input.TopicHref != "" {
		kind := r.Classifier.Classify(input.TopicHref)
		if IsTocIncludeHref(kind) {
			r.Sink.Emit(Diagnostic{Kind: DiagInvalidTopicHref, File: currentFile, Message: "topicHref must not be a TOC-include href", Detail: input.TopicHref})
		} else {
			return input.TopicHref
		}
	}
	if input.Href == "" || !IsTocIncludeHref(r.Classifier.Classify(input.Href)) {
		return input.Href
	}
	return ""
}

// processTocHref expands a TOC-include href into the items or the first-item
// link it contributes to the resolved node.
func (r *NodeResolver) processTocHref(ctx context.Context, currentFile, rootFile FilePath, guard RecursionGuard, tocHref string, kind TocHrefKind, referencedFiles, referencedTocs *[]*Document) (tocHrefOutcome, error) {
	switch {
	case tocHref == "":
		return tocHrefOutcome{}, nil

	case kind == KindAbsolutePath:
		return tocHrefOutcome{resolvedTocHref: tocHref}, nil

	case kind == KindTocFile:
		doc := r.TocHrefs.Resolve(ctx, currentFile, tocHref, kind, referencedTocs)
		if doc == nil {
			return tocHrefOutcome{}, nil
		}
		res, err := r.Loader.Load(ctx, doc.FilePath, guard)
		if err != nil {
			if _, ok := err.(*CircularReferenceError); ok {
				return tocHrefOutcome{}, nil
			}
			return tocHrefOutcome{}, err
		}
		*referencedFiles = append(*referencedFiles, res.ReferencedFiles...)
		outcome := tocHrefOutcome{items: res.Node.Items}
		if first := getFirstItem(outcome.items); first != nil {
			outcome.subChildrenFirstItem = first.Href
			outcome.firstItemDocument = first.Document
		}
		return outcome, nil

	case kind == KindRelativeFolder:
		doc := r.TocHrefs.Resolve(ctx, currentFile, tocHref, kind, nil)
		if doc == nil {
			return tocHrefOutcome{}, nil
		}
		res, err := r.Loader.Load(ctx, doc.FilePath, guard)
		if err != nil {
			if _, ok := err.(*CircularReferenceError); ok {
				return tocHrefOutcome{}, nil
			}
			return tocHrefOutcome{}, err
		}
		first := getFirstItem(res.Node.Items)
		if first == nil {
			return tocHrefOutcome{}, nil
		}
		if r.Deps != nil && first.Document != nil {
			r.Deps.AddDependencyItem(currentFile, first.Document.FilePath, "tocInclusion", "toc")
		}
		return tocHrefOutcome{subChildrenFirstItem: first.Href, firstItemDocument: first.Document}, nil

	default:
		return tocHrefOutcome{}, nil
	}
}

// processTopicItem resolves a node's topic link, either through its href or
// through its uid cross-reference.
func (r *NodeResolver) processTopicItem(ctx context.Context, currentFile, rootFile FilePath, topicHref, uid string, addToReferencedFiles bool, referencedFiles *[]*Document) (resolvedHref, displayName string, document *Document) {
	switch {
	case topicHref != "":
		href, doc, err := r.Links.ResolveLink(ctx, topicHref, currentFile, rootFile)
		if err != nil {
			r.Sink.Emit(Diagnostic{Kind: DiagCollaboratorError, File: currentFile, Message: err.Error(), Detail: topicHref})
		}
		if addToReferencedFiles && doc != nil {
			*referencedFiles = append(*referencedFiles, doc)
		}
		return href, "", doc

	case uid != "":
		monikers := Default
		if r.Monikers != nil {
			monikers = r.Monikers.GetFileLevelMonikers(ctx, r.Sink, currentFile)
		}
		link, name, declDoc, err := r.Xrefs.ResolveXrefByUid(ctx, uid, currentFile, rootFile, monikers)
		if err != nil {
			r.Sink.Emit(Diagnostic{Kind: DiagCollaboratorError, File: currentFile, Message: err.Error(), Detail: uid})
		}
		if declDoc != nil {
			*referencedFiles = append(*referencedFiles, declDoc)
		}
		return link, name, declDoc

	default:
		return "", "", nil
	}
}

// getFirstItem returns the first item in pre-order traversal with a
// non-empty href. When no sibling has a direct href, it inspects only the
// first child's own subtree, not every sibling's. Callers must not "fix"
// this asymmetry; it is intentional.
func getFirstItem(items []*TocNode) *TocNode {
	for _, item := range items {
		if item.Href != "" {
			return item
		}
	}
	if len(items) > 0 {
		return getFirstItem(items[0].Items)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
