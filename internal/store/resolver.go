package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doctoolkit/tocloader/internal/toc"
	"github.com/doctoolkit/tocloader/internal/utils"
)

// FileResolver implements toc.LinkResolver and toc.XrefResolver by probing
// the working tree relative to Root and recording what it finds in a Store.
// It is the concrete adapter wiring the loader's external collaborators to
// actual disk content.
type FileResolver struct {
	Root  string
	Store *Store
}

// ResolveLink resolves href relative to currentFile's directory and mints
// (or refreshes) a document record for it, provided the file exists.
func (r *FileResolver) ResolveLink(ctx context.Context, href string, currentFile, rootFile toc.FilePath) (string, *toc.Document, error) {
	abs := filepath.Join(filepath.Dir(currentFile.Path()), href)
	doc, err := r.probe(abs)
	if err != nil {
		return href, nil, err
	}
	return href, doc, nil
}

// ResolveContent probes href the same way, for TOC-include resolution.
func (r *FileResolver) ResolveContent(ctx context.Context, href string, currentFile toc.FilePath) (*toc.Document, error) {
	abs := filepath.Join(filepath.Dir(currentFile.Path()), href)
	return r.probe(abs)
}

func (r *FileResolver) probe(relPath string) (*toc.Document, error) {
	full := filepath.Join(r.Root, relPath)
	content, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", relPath, err)
	}

	fp := toc.NewFilePath(relPath)
	if r.Store != nil {
		contentType := contentTypeFor(relPath)
		if err := r.Store.UpsertDocument(fp, contentType, utils.ComputeChecksum(content)); err != nil {
			return nil, err
		}
		return &toc.Document{FilePath: fp, ContentType: contentType}, nil
	}
	return &toc.Document{FilePath: fp, ContentType: contentTypeFor(relPath)}, nil
}

// ResolveXrefByUid always follows the uid-to-path convention (internal/utils);
// it keeps no record of explicit uid declarations. It reports the declaring
// file's conventional path as the link and its last path segment as a
// display name.
func (r *FileResolver) ResolveXrefByUid(ctx context.Context, uid string, currentFile, rootFile toc.FilePath, monikers toc.MonikerList) (string, string, *toc.Document, error) {
	relPath := utils.UIDToPath(uid, ".")
	doc, err := r.probe(relPath)
	if err != nil {
		return "", "", nil, err
	}
	if doc == nil {
		return "", "", nil, fmt.Errorf("xref %q: no document at conventional path %s", uid, relPath)
	}
	return doc.FilePath.Path(), filepath.Base(relPath), doc, nil
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return "markdown"
	case ".yml", ".yaml":
		return "toc"
	case ".json":
		return "toc"
	default:
		return "unknown"
	}
}
