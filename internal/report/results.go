// Package report renders scan results and the walk error log for people
// (text with lipgloss styling) and for programs (JSON lines, YAML).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

// fileRecord is the serialized form of a scanengine.FileResult.
type fileRecord struct {
	Path        string              `json:"path"                  yaml:"path"`
	Metadata    *probe.SongMetadata `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
	Error       string              `json:"error,omitempty"       yaml:"error,omitempty"`
	Unsupported bool                `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`
}

// walkErrorRecord is the serialized form of a filesystem.WalkError.
type walkErrorRecord struct {
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Dir   string `json:"dir,omitempty"  yaml:"dir,omitempty"`
	Op    string `json:"op"             yaml:"op"`
	Kind  string `json:"kind"           yaml:"kind"`
	Error string `json:"error"          yaml:"error"`
}

// jsonLine is one line of JSON output: a file or a walk error.
type jsonLine struct {
	File      *fileRecord      `json:"file,omitempty"`
	WalkError *walkErrorRecord `json:"walk_error,omitempty"`
}

// yamlDocument is the whole YAML output.
type yamlDocument struct {
	Root       string            `yaml:"root"`
	Cancelled  bool              `yaml:"cancelled,omitempty"`
	Stats      scanengine.Stats  `yaml:"stats"`
	Files      []fileRecord      `yaml:"files"`
	WalkErrors []walkErrorRecord `yaml:"walk_errors"`
}

// WriteResults writes every file result and walk error to w in format.
func WriteResults(w io.Writer, result *scanengine.Result, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format) //nolint:err113 // Carries the format
	}
}

func writeText(w io.Writer, result *scanengine.Result) error {
	for _, file := range result.Files {
		var err error

		switch {
		case file.Err != nil:
			_, err = fmt.Fprintf(w, "%s\terror: %v\n", file.Path, file.Err)
		case file.Metadata != nil:
			_, err = fmt.Fprintf(w, "%s\t%s\n", file.Path, describe(file.Metadata))
		default:
			_, err = fmt.Fprintln(w, file.Path)
		}

		if err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	return nil
}

func writeJSON(w io.Writer, result *scanengine.Result) error {
	encoder := json.NewEncoder(w)

	for _, file := range result.Files {
		record := newFileRecord(file)
		if err := encoder.Encode(jsonLine{File: &record}); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	for _, walkErr := range result.WalkErrors {
		record := newWalkErrorRecord(walkErr)
		if err := encoder.Encode(jsonLine{WalkError: &record}); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	return nil
}

func writeYAML(w io.Writer, result *scanengine.Result) error {
	doc := yamlDocument{
		Root:       result.Root,
		Cancelled:  result.Cancelled,
		Stats:      result.Stats,
		Files:      make([]fileRecord, 0, len(result.Files)),
		WalkErrors: make([]walkErrorRecord, 0, len(result.WalkErrors)),
	}

	for _, file := range result.Files {
		doc.Files = append(doc.Files, newFileRecord(file))
	}

	for _, walkErr := range result.WalkErrors {
		doc.WalkErrors = append(doc.WalkErrors, newWalkErrorRecord(walkErr))
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd // Conventional YAML indent

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	return nil
}

func newFileRecord(file scanengine.FileResult) fileRecord {
	record := fileRecord{Path: file.Path, Metadata: file.Metadata}

	if file.Err != nil {
		record.Error = file.Err.Error()
		record.Unsupported = isUnsupported(file.Err)
	}

	return record
}

func newWalkErrorRecord(walkErr filesystem.WalkError) walkErrorRecord {
	record := walkErrorRecord{
		Path: walkErr.Path,
		Dir:  walkErr.Dir,
		Op:   walkErr.Op,
		Kind: walkErr.Kind.String(),
	}

	if walkErr.Err != nil {
		record.Error = walkErr.Err.Error()
	}

	return record
}

func isUnsupported(err error) bool {
	return errors.Is(err, probe.ErrUnsupportedFormat)
}
