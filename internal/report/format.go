package report

import (
	"fmt"
	"strings"
)

// Format selects how scan results are written.
type Format int

const (
	// FormatText writes one line per file.
	FormatText Format = iota
	// FormatJSON writes one JSON object per line.
	FormatJSON
	// FormatYAML writes a single YAML document.
	FormatYAML
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "json", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("invalid format: %s (valid: text, json, yaml)", s) //nolint:err113 // Carries the input
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
