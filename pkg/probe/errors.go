package probe

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failed")
)

// UnsupportedFormatError reports a file whose extension is not on the allow-list.
// The file is not read.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("probe %s: unsupported format: no extension", e.Path)
	}

	return fmt.Sprintf("probe %s: unsupported format %q", e.Path, e.Extension)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) succeed.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// DecodeError reports content that no decoder or tag reader recognised.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) succeed.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
