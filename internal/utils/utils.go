// Package utils holds small pure helpers used by the store package.
package utils

import (
	"crypto/md5"
	"path/filepath"
	"strings"
)

// ComputeChecksum returns the raw MD5 checksum of content, used to detect
// whether a document needs re-upserting.
func ComputeChecksum(content []byte) []byte {
	hash := md5.New()
	hash.Write(content)
	return hash.Sum(nil)
}

// UIDToPath converts a dotted uid ("guide.setup.intro") into the
// conventional content path ("<base>/guide/setup/intro.md") an
// XrefResolver falls back to when no explicit declaration is on record.
func UIDToPath(uid, base string) string {
	segments := strings.Split(uid, ".")
	rel := strings.Join(segments, "/")
	return filepath.Join(base, rel+".md")
}
