package toc

import (
	"net/url"
	"strings"
)

// reservedTocNames are the file names (case-insensitive) that make a path
// segment a TOC-include href of kind TocFile.
var reservedTocNames = map[string]bool{
	"toc.md":                  true,
	"toc.json":                true,
	"toc.yml":                 true,
	"toc.experimental.md":     true,
	"toc.experimental.json":   true,
	"toc.experimental.yml":    true,
}

// UrlType mirrors the external URL utility's classification of a raw href,
// ahead of the TOC-specific refinement HrefClassifier performs.
type UrlType int

const (
	UrlTypeRelativePath UrlType = iota
	UrlTypeAbsolutePath
	UrlTypeExternal
)

// UrlUtility is the minimal external URL-type classifier HrefClassifier
// depends on.
type UrlUtility interface {
	Classify(href string) UrlType
}

// DefaultUrlUtility classifies absolute file-system paths and URLs with a
// scheme or leading slash as AbsolutePath/External; everything else is a
// relative path.
type DefaultUrlUtility struct{}

func (DefaultUrlUtility) Classify(href string) UrlType {
	if href == "" {
		return UrlTypeRelativePath
	}
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "\\") {
		return UrlTypeAbsolutePath
	}
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return UrlTypeExternal
	}
	if len(href) > 1 && href[1] == ':' { // C:\... Windows absolute path
		return UrlTypeAbsolutePath
	}
	return UrlTypeRelativePath
}

// HrefClassifier classifies raw href strings into a TocHrefKind.
type HrefClassifier struct {
	URLs UrlUtility
}

// NewHrefClassifier builds a classifier with the default URL utility.
func NewHrefClassifier() *HrefClassifier {
	return &HrefClassifier{URLs: DefaultUrlUtility{}}
}

// Classify implements the five-step classification algorithm.
func (c *HrefClassifier) Classify(href string) TocHrefKind {
	if href == "" {
		return KindNone
	}

	urls := c.URLs
	if urls == nil {
		urls = DefaultUrlUtility{}
	}
	switch urls.Classify(href) {
	case UrlTypeAbsolutePath, UrlTypeExternal:
		return KindAbsolutePath
	}

	path := stripQueryAndFragment(href)
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return KindRelativeFolder
	}

	segment := lastPathSegment(path)
	if reservedTocNames[strings.ToLower(segment)] {
		return KindTocFile
	}
	return KindRelativeFile
}

func stripQueryAndFragment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i]
	}
	return href
}

func lastPathSegment(path string) string {
	path = strings.TrimRight(path, "/\\")
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}
