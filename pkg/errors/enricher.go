package errors

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"github.com/joe/music-scan/pkg/filesystem"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances for performance
	pathExtractionPatterns = []*regexp.Regexp{
		// Unix/Linux paths (absolute and relative)
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows paths with backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
		// Windows paths with forward slashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes a standard error and enriches it with category and actionable suggestions.
// If the error is already an ActionableError, it is returned unchanged.
// Wrapped sentinel errors decide the category before the message is matched.
// If affectedPath is empty, the path comes from the wrapped error or its message.
func (e *enricher) Enrich(err error, affectedPath string) error {
	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	if affectedPath == "" {
		affectedPath = errorPath(err)
	}

	category := matchSentinel(err)
	if category == CategoryUnknown {
		category = e.matcher.Match(errMsg)
	}

	return NewActionableError(
		errMsg,
		category,
		e.generator.Generate(category, affectedPath),
		affectedPath,
	)
}

// errorPath finds the path an error is about.
func errorPath(err error) string {
	var walkErr *filesystem.WalkError
	if errors.As(err, &walkErr) {
		if walkErr.Path != "" {
			return walkErr.Path
		}

		return walkErr.Dir
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Path != "" {
		return pathErr.Path
	}

	return extractPath(err.Error())
}

// extractPath attempts to extract a file path from common Go error message formats.
// Returns empty string if no path is found.
//
// This function recognizes standard Go error formats like:
//   - "open /path/to/file: permission denied"
//   - "lstat /var/music/a.flac: no such file or directory"
//   - "opendir C:\Music\locked: Access is denied."
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
