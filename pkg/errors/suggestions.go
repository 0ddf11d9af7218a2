package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryFormat:
		return g.generateFormatSuggestions(affectedPath)
	case CategoryDecode:
		return g.generateDecodeSuggestions(affectedPath)
	case CategoryRead:
		return g.generateReadSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateDecodeSuggestions(path string) []string {
	suggestions := []string{
		"The file may be truncated or corrupted; try playing it in a media player",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the file header with 'file %s'", path))
	}

	suggestions = append(suggestions, "Re-rip or re-download the file if it does not play")

	return suggestions
}

func (g *suggestionGenerator) generateFormatSuggestions(_ string) []string {
	return []string{
		"The file extension is not a supported audio format",
		"Use --include to limit the scan to audio files, e.g. --include '**/*.flac'",
		"Extensions are matched case-sensitively; rename files with upper-case extensions",
	}
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "The entry may have been moved or deleted during the scan: "+path)
	} else {
		suggestions = append(suggestions, "The entry may have been moved or deleted during the scan")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read and execute permissions for the directories being scanned",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the affected directory")
	}

	suggestions = append(suggestions, "Try running with appropriate permissions or as a privileged user")

	return suggestions
}

func (g *suggestionGenerator) generateReadSuggestions(path string) []string {
	suggestions := []string{
		"Try the scan again; this may be a transient I/O or network error",
		"For SFTP roots, check the connection to the server",
		"Check system logs for disk or hardware issues",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the entry can be read: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
