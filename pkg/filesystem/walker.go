package filesystem

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// DefaultReadBatch is the number of entries fetched per directory read on local sources.
const DefaultReadBatch = 128

// Order selects when a discovered subdirectory is drained.
type Order int

const (
	// DepthFirst drains a subdirectory as soon as it is discovered, suspending
	// its parent on the pending stack. Open handles are bounded by tree depth.
	DepthFirst Order = iota
	// SiblingsFirst keeps draining the parent and queues each discovered
	// subdirectory on the pending stack; subdirectories are drained most
	// recently discovered first once the parent is exhausted.
	SiblingsFirst
)

// String returns the string representation of Order
func (o Order) String() string {
	switch o {
	case DepthFirst:
		return "depth-first"
	case SiblingsFirst:
		return "siblings-first"
	default:
		return "unknown"
	}
}

// ParseOrder parses a traversal order name.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "depth-first", "depth":
		return DepthFirst, nil
	case "siblings-first", "siblings":
		return SiblingsFirst, nil
	default:
		return DepthFirst, fmt.Errorf("invalid order: %s (valid: depth-first, siblings-first)", s) //nolint:err113 // Carries the input
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// WalkOption configures a DirectoryWalker.
type WalkOption func(*walkOptions)

type walkOptions struct {
	order     Order
	readBatch int
}

// WithOrder sets the traversal order. Defaults to DepthFirst.
func WithOrder(order Order) WalkOption {
	return func(o *walkOptions) {
		o.order = order
	}
}

// WithReadBatch sets how many entries a local directory read fetches at once.
// It applies to NewDirectoryWalker and to local sources passed to
// NewSourceWalker; listing sources read whole directories and ignore it.
// Values <= 0 keep the source's batch size.
func WithReadBatch(n int) WalkOption {
	return func(o *walkOptions) {
		o.readBatch = n
	}
}

// PathScanner is a lazy, single-pass sequence of file paths that records
// recoverable errors instead of stopping.
type PathScanner interface {
	// Next returns the next file path, or ("", false) once the walk is exhausted.
	Next() (string, bool)

	// Errors returns a snapshot of the errors recorded so far, in discovery order.
	Errors() []WalkError

	// ErrorCount returns how many errors have been recorded so far.
	ErrorCount() int

	// Close releases any resources still held by the scan.
	Close() error
}

// DirectoryWalker enumerates every non-directory entry beneath a root using an
// explicit stack of open directory handles.
//
// A DirectoryWalker is not safe for concurrent use.
type DirectoryWalker struct {
	source  Source
	order   Order
	current DirHandle
	pending []DirHandle
	errs    []WalkError
}

var _ PathScanner = (*DirectoryWalker)(nil)

// NewDirectoryWalker opens root on the local filesystem for walking.
// A root that cannot be opened is returned as a *WalkError.
func NewDirectoryWalker(root string, opts ...WalkOption) (*DirectoryWalker, error) {
	options := buildWalkOptions(opts)

	return newWalker(&localSource{readBatch: options.readBatch}, root, options)
}

// NewSourceWalker opens root on src for walking.
// A root that cannot be opened is returned as a *WalkError.
func NewSourceWalker(src Source, root string, opts ...WalkOption) (*DirectoryWalker, error) {
	options := buildWalkOptions(opts)

	if local, ok := src.(*localSource); ok && options.readBatch > 0 && local.readBatch != options.readBatch {
		src = &localSource{readBatch: options.readBatch}
	}

	return newWalker(src, root, options)
}

func buildWalkOptions(opts []WalkOption) walkOptions {
	options := walkOptions{order: DepthFirst}
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

func newWalker(src Source, root string, options walkOptions) (*DirectoryWalker, error) {
	handle, err := src.OpenDir(root)
	if err != nil {
		walkErr := newWalkError(OpOpenDir, root, "", err)
		return nil, &walkErr
	}

	return &DirectoryWalker{
		source:  src,
		order:   options.order,
		current: handle,
	}, nil
}

// Next advances to the next file and returns its path.
func (w *DirectoryWalker) Next() (string, bool) {
	for w.current != nil {
		entry, err := w.current.Next()
		if errors.Is(err, io.EOF) {
			w.popCurrent()
			continue
		}
		if err != nil {
			w.record(newWalkError(OpReadDir, "", w.current.Path(), err))
			continue
		}

		info, err := entry.Info()
		if err != nil {
			w.record(newWalkError(OpLstat, entry.Path(), "", err))
			continue
		}

		if info.IsDir() {
			w.enter(entry.Path())
			continue
		}

		return entry.Path(), true
	}

	return "", false
}

// Errors returns a copy of the errors recorded so far.
func (w *DirectoryWalker) Errors() []WalkError {
	errs := make([]WalkError, len(w.errs))
	copy(errs, w.errs)

	return errs
}

// ErrorCount returns how many errors have been recorded so far.
func (w *DirectoryWalker) ErrorCount() int {
	return len(w.errs)
}

// Paths returns the remaining walk as an iterator.
func (w *DirectoryWalker) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			path, ok := w.Next()
			if !ok || !yield(path) {
				return
			}
		}
	}
}

// Close releases every handle still open and ends the walk.
// Recorded errors remain available.
func (w *DirectoryWalker) Close() error {
	var firstErr error

	if w.current != nil {
		firstErr = w.current.Close()
		w.current = nil
	}

	for i := len(w.pending) - 1; i >= 0; i-- {
		if err := w.pending[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.pending = nil

	return firstErr
}

// enter opens a discovered subdirectory and places it according to the walk order.
func (w *DirectoryWalker) enter(path string) {
	handle, err := w.source.OpenDir(path)
	if err != nil {
		w.record(newWalkError(OpOpenDir, path, "", err))
		return
	}

	if w.order == SiblingsFirst {
		w.pending = append(w.pending, handle)
		return
	}

	w.pending = append(w.pending, w.current)
	w.current = handle
}

// popCurrent closes the drained handle and resumes the most recently pushed one.
func (w *DirectoryWalker) popCurrent() {
	_ = w.current.Close()

	n := len(w.pending)
	if n == 0 {
		w.current = nil
		return
	}

	w.current = w.pending[n-1]
	w.pending[n-1] = nil
	w.pending = w.pending[:n-1]
}

func (w *DirectoryWalker) record(err WalkError) {
	w.errs = append(w.errs, err)
}
