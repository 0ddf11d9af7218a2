package probe

import (
	"path/filepath"
	"slices"
	"strings"
)

// SupportedExtensions lists the extensions, without the dot, the prober accepts.
// Matching is case-sensitive.
//
//nolint:gochecknoglobals // Fixed allow-list
var SupportedExtensions = []string{
	"iso", "ape", "flac", "aif", "aiff", "wav", "m4a",
	"aac", "mp2", "mp3", "ogg", "wma", "opus", "tak",
}

// Extension returns the extension of path without the leading dot.
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// IsSupported reports whether path has an allow-listed extension.
func IsSupported(path string) bool {
	ext := Extension(path)

	return ext != "" && slices.Contains(SupportedExtensions, ext)
}
