package index

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// shouldExclude checks if a directory entry is skipped by the given patterns.
// Patterns are matched against the base name only:
//   - Glob patterns: *.tmp, .~lock.*, {a,b}.log
//   - Directory patterns: cache/ (only matches directory entries)
func shouldExclude(name string, isDir bool, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if strings.HasSuffix(pattern, "/") {
			if !isDir {
				continue
			}
			pattern = strings.TrimSuffix(pattern, "/")
		}

		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}
