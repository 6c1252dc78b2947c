// Package setops compares two directory indices and carries out the
// requested action on them.
package setops

import (
	"sort"

	"github.com/sdejongh/hashmerge/pkg/index"
	"github.com/sdejongh/hashmerge/pkg/models"
)

// Intersection returns a pair for every digest present in both indices,
// ordered by the path in a
func Intersection(a, b index.DirectoryIndex) []models.FilePair {
	pairs := make([]models.FilePair, 0)
	for _, entry := range a.Entries() {
		if pathB, ok := b.Lookup(entry.Digest); ok {
			pairs = append(pairs, models.FilePair{
				Digest: string(entry.Digest),
				PathA:  entry.Path,
				PathB:  pathB,
			})
		}
	}
	return pairs
}

// Difference returns the paths of a whose digest is absent from b, in
// ascending order
func Difference(a, b index.DirectoryIndex) []string {
	paths := make([]string, 0)
	for _, entry := range a.Entries() {
		if !b.Has(entry.Digest) {
			paths = append(paths, entry.Path)
		}
	}
	return paths
}

// sortByB orders pairs by the path in the second directory
func sortByB(pairs []models.FilePair) []models.FilePair {
	sorted := append([]models.FilePair(nil), pairs...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PathB < sorted[j].PathB
	})
	return sorted
}
