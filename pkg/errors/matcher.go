package errors

import (
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order; the first matching pattern wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryPatterns{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file not found",
				"path does not exist",
				"not a directory",
			}},
			{CategoryFormat, []string{
				"unsupported format",
			}},
			{CategoryDecode, []string{
				"invalid",
				"malformed",
				"no tags found",
				"sync word",
			}},
			{CategoryRead, []string{
				"input/output error",
				"i/o error",
				"unexpected eof",
				"connection lost",
				"connection reset",
				"broken pipe",
			}},
		},
	}
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}

// matchSentinel categorises err by the sentinel errors it wraps.
// Returns CategoryUnknown when none applies.
func matchSentinel(err error) ErrorCategory {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return CategoryPermission
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, filesystem.ErrNotDirectory):
		return CategoryPath
	case errors.Is(err, probe.ErrUnsupportedFormat):
		return CategoryFormat
	case errors.Is(err, probe.ErrDecode):
		return CategoryDecode
	case errors.Is(err, io.ErrUnexpectedEOF):
		return CategoryRead
	default:
		return CategoryUnknown
	}
}
