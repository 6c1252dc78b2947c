// Package index builds content-digest indices of directories.
//
// A DirectoryIndex maps each digest to exactly one path. When several
// files in the same directory share content, the file scanned last wins
// silently; entries are scanned in the order the backend lists them,
// which is lexical for the local filesystem.
package index

import (
	"sort"

	"github.com/sdejongh/hashmerge/pkg/digest"
)

// DirectoryIndex maps a content digest to the path of the file holding it
type DirectoryIndex map[digest.Digest]string

// Has reports whether the index contains the digest
func (idx DirectoryIndex) Has(d digest.Digest) bool {
	_, ok := idx[d]
	return ok
}

// Lookup returns the path stored for the digest
func (idx DirectoryIndex) Lookup(d digest.Digest) (string, bool) {
	path, ok := idx[d]
	return path, ok
}

// Len returns the number of distinct digests
func (idx DirectoryIndex) Len() int {
	return len(idx)
}

// Entry is one digest/path pair of an index
type Entry struct {
	Digest digest.Digest
	Path   string
}

// Entries returns the index content sorted by path
func (idx DirectoryIndex) Entries() []Entry {
	entries := make([]Entry, 0, len(idx))
	for d, path := range idx {
		entries = append(entries, Entry{Digest: d, Path: path})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path == entries[j].Path {
			return entries[i].Digest < entries[j].Digest
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Paths returns every indexed path in ascending order
func (idx DirectoryIndex) Paths() []string {
	entries := idx.Entries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}
