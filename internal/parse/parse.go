// Package parse implements toc.Parser: reading a TOC source file off disk
// and decoding it (YAML or JSON, by extension) into the loader's input-level
// TocNode tree.
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doctoolkit/tocloader/internal/toc"
	"gopkg.in/yaml.v3"
)

// FileParser reads TOC files relative to Root.
type FileParser struct {
	Root string
}

// tocInput is the on-disk shape of one TOC node, before href resolution.
type tocInput struct {
	Name      string     `yaml:"name" json:"name"`
	Href      string     `yaml:"href" json:"href"`
	TocHref   string     `yaml:"tocHref" json:"tocHref"`
	TopicHref string     `yaml:"topicHref" json:"topicHref"`
	UID       string     `yaml:"uid" json:"uid"`
	Homepage  string     `yaml:"homepage" json:"homepage"`
	Children  []string   `yaml:"children" json:"children"`
	Items     []tocInput `yaml:"items" json:"items"`
}

// Parse implements toc.Parser. A TOC file's top-level content is a plain
// list of entries (docfx-style), not a single object, so it decodes into a
// synthetic root node whose Items are the file's top-level entries.
func (p *FileParser) Parse(ctx context.Context, file toc.FilePath, sink toc.ErrorSink) (*toc.TocNode, error) {
	full := filepath.Join(p.Root, file.Path())
	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path(), err)
	}

	var items []tocInput
	switch filepath.Ext(file.Path()) {
	case ".json":
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse %s as json: %w", file.Path(), err)
		}
	default:
		if err := yaml.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse %s as yaml: %w", file.Path(), err)
		}
	}

	root := &toc.TocNode{Source: toc.SourceLocation{File: file}}
	root.Items = make([]*toc.TocNode, len(items))
	for i, item := range items {
		root.Items[i] = toInputNode(item, file)
	}
	return root, nil
}

func toInputNode(in tocInput, file toc.FilePath) *toc.TocNode {
	node := &toc.TocNode{
		Name:      in.Name,
		Href:      in.Href,
		TocHref:   in.TocHref,
		TopicHref: in.TopicHref,
		UID:       in.UID,
		Homepage:  in.Homepage,
		Children:  in.Children,
		Source:    toc.SourceLocation{File: file},
	}
	if len(in.Items) > 0 {
		node.Items = make([]*toc.TocNode, len(in.Items))
		for i, child := range in.Items {
			node.Items[i] = toInputNode(child, file)
		}
	}
	return node
}
