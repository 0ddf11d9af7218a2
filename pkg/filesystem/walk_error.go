package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// Operations recorded on a WalkError.
const (
	OpOpenDir = "opendir"
	OpReadDir = "readdir"
	OpLstat   = "lstat"
)

// ErrNotDirectory is returned when a walk root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrorKind classifies the OS error behind a WalkError.
type ErrorKind int

const (
	// KindOther covers every failure that is neither not-found nor permission-denied.
	KindOther ErrorKind = iota
	// KindNotFound means the path vanished or never existed.
	KindNotFound
	// KindPermissionDenied means the OS refused access.
	KindPermissionDenied
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindPermissionDenied:
		return "permission-denied"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassifyError maps an error onto an ErrorKind.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	default:
		return KindOther
	}
}

// WalkError records a failure met while walking.
//
// Path is empty when the failure was reading the next entry of a directory
// rather than resolving a specific path; Dir then names the directory being
// drained.
type WalkError struct {
	Path string    `json:"path"           yaml:"path"`
	Dir  string    `json:"dir,omitempty"  yaml:"dir,omitempty"`
	Op   string    `json:"op"             yaml:"op"`
	Kind ErrorKind `json:"kind"           yaml:"kind"`
	Err  error     `json:"-"              yaml:"-"`
}

func newWalkError(op, path, dir string, err error) WalkError {
	return WalkError{
		Path: path,
		Dir:  dir,
		Op:   op,
		Kind: ClassifyError(err),
		Err:  err,
	}
}

func (e *WalkError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s <entry in %s>: %v", e.Op, e.Dir, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}
