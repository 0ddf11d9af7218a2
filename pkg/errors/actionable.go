// Package errors turns scan errors into actionable messages with suggestions.
//
// The enricher categorises an error (permission, path, format, decode, read)
// first by the sentinel errors it wraps, then by its message, and attaches
// suggestions for that category.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	enriched := enricher.Enrich(walkErr, "")
//	fmt.Println(enriched.Error())
//	fmt.Println(errors.FormatSuggestions(enriched))
//
// When no path is given the enricher takes it from a wrapped *fs.PathError or
// *filesystem.WalkError, and failing that from the error message:
//
//	err := errors.New("open /music/locked: permission denied")
//	enriched := enricher.Enrich(err, "") // AffectedPath() == "/music/locked"
package errors

import "strings"

// Exported constants.
const (
	CategoryDecode     ErrorCategory = "decode"
	CategoryFormat     ErrorCategory = "format"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryRead       ErrorCategory = "read"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list.
// Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError)
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
