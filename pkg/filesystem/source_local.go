package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localSource implements Source using the os package.
type localSource struct {
	readBatch int
}

// NewLocalSource returns a Source backed by the local filesystem.
func NewLocalSource() Source {
	return &localSource{readBatch: DefaultReadBatch}
}

// Open opens a file for reading.
func (s *localSource) Open(path string) (File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// OpenDir opens a directory for listing.
func (s *localSource) OpenDir(path string) (DirHandle, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := dir.Stat()
	if err != nil {
		_ = dir.Close()
		return nil, err
	}

	if !info.IsDir() {
		_ = dir.Close()
		return nil, ErrNotDirectory
	}

	batch := s.readBatch
	if batch <= 0 {
		batch = DefaultReadBatch
	}

	return &localDirHandle{dir: dir, path: path, batch: batch}, nil
}

// localDirHandle drains an *os.File directory in batches.
type localDirHandle struct {
	dir     *os.File
	path    string
	batch   int
	entries []fs.DirEntry
	readErr error
	drained bool
}

func (h *localDirHandle) Path() string {
	return h.path
}

func (h *localDirHandle) Next() (DirEntry, error) {
	for len(h.entries) == 0 {
		if h.readErr != nil {
			err := h.readErr
			h.readErr = nil
			return nil, err
		}
		if h.drained {
			return nil, io.EOF
		}
		h.fill()
	}

	entry := h.entries[0]
	h.entries[0] = nil
	h.entries = h.entries[1:]

	return &localDirEntry{entry: entry, path: filepath.Join(h.path, entry.Name())}, nil
}

// fill reads the next batch. A read error is held back until the entries
// read alongside it have been handed out, and ends the listing.
func (h *localDirHandle) fill() {
	entries, err := h.dir.ReadDir(h.batch)
	h.entries = entries

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		h.drained = true
	default:
		h.drained = true
		h.readErr = err
	}
}

func (h *localDirHandle) Close() error {
	h.entries = nil
	h.drained = true

	return h.dir.Close()
}

// localDirEntry adapts fs.DirEntry to DirEntry.
type localDirEntry struct {
	entry fs.DirEntry
	path  string
}

func (e *localDirEntry) Path() string {
	return e.path
}

func (e *localDirEntry) Info() (os.FileInfo, error) {
	return e.entry.Info()
}
