package scanengine

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter defines the interface for choosing which found files are probed
type FileFilter interface {
	// ShouldInclude returns true if the file at the given root-relative path should be probed
	ShouldInclude(relativePath string) bool
}

// GlobFilter implements FileFilter using glob patterns
type GlobFilter struct {
	normalizedPatterns []string
}

// NewGlobFilter creates a new GlobFilter matching any of the given patterns.
// No patterns, or only empty ones, match all files.
func NewGlobFilter(patterns ...string) *GlobFilter {
	filter := &GlobFilter{}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		filter.normalizedPatterns = append(filter.normalizedPatterns, strings.ToLower(pattern))
	}

	return filter
}

// ShouldInclude returns true if the file should be included based on the glob patterns
// Case-insensitive matching; paths use forward slashes
func (f *GlobFilter) ShouldInclude(relativePath string) bool {
	if len(f.normalizedPatterns) == 0 {
		return true
	}

	normalizedPath := strings.ToLower(filepath.ToSlash(relativePath))

	for _, pattern := range f.normalizedPatterns {
		// Invalid patterns never match
		if matched, err := doublestar.Match(pattern, normalizedPath); err == nil && matched {
			return true
		}
	}

	return false
}

// relativePath returns p relative to root for filtering. Paths outside root
// are returned unchanged.
func relativePath(root, p string) string {
	root = filepath.Clean(root)
	if root == "." {
		return p
	}

	rel, err := filepath.Rel(root, filepath.Clean(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}

	return rel
}
