// Package probe reads tag and stream metadata from audio files.
package probe

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhowden/tag"
)

// Prober extracts metadata from an open audio file.
type Prober interface {
	Probe(file io.ReadSeeker, path string) (*SongMetadata, error)
}

// FileProber is the default Prober. It decides by extension, then reads the
// stream info of the formats it can decode and the tags of every format.
type FileProber struct{}

var _ Prober = (*FileProber)(nil)

// New returns the default prober.
func New() *FileProber {
	return &FileProber{}
}

// Probe reads metadata from file, which was opened from path.
//
// A path without an allow-listed extension fails with *UnsupportedFormatError
// before file is touched. Content that neither a stream decoder nor a tag
// reader recognises fails with *DecodeError.
func (p *FileProber) Probe(file io.ReadSeeker, path string) (*SongMetadata, error) {
	ext := Extension(path)
	if !IsSupported(path) {
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}

	meta := &SongMetadata{}

	var errs []error

	if readStream, ok := streamReaders[ext]; ok {
		if err := rewind(file); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}

		if err := readStream(file, meta); err != nil {
			errs = append(errs, err)
		}
	}

	if err := readTags(file, meta); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	if !meta.HasTags() && !meta.HasStream() {
		errs = append(errs, tag.ErrNoTagsFound)
		return nil, &DecodeError{Path: path, Err: errors.Join(errs...)}
	}

	return meta, nil
}

// readTags prefers the container's own tags and falls back to a trailing
// ID3v1 block. Missing tags leave meta untouched; a seek failure is the
// only error.
func readTags(file io.ReadSeeker, meta *SongMetadata) error {
	if err := rewind(file); err != nil {
		return err
	}

	m, err := tag.ReadFrom(file)
	if err == nil {
		applyTags(m, meta)

		if meta.Codec == "" {
			meta.Codec = tagCodec(m)
		}

		return nil
	}

	if err := rewind(file); err != nil {
		return err
	}

	m, err = tag.ReadID3v1Tags(file)
	if err != nil {
		return nil //nolint:nilerr // No trailing tag block either
	}

	applyTags(m, meta)

	return nil
}

func rewind(file io.Seeker) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	return nil
}

// Supports reports whether path has an extension Probe accepts.
func (p *FileProber) Supports(path string) bool {
	return IsSupported(path)
}
