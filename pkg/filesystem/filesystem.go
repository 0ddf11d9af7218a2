// Package filesystem provides the directory walker and the filesystem sources it
// walks (local disk, SFTP, in-memory), so traversal can be tested without
// touching real I/O.
package filesystem

import (
	"io"
	"os"
)

// File is an open file handle that can be read and repositioned.
// Both *os.File and *sftp.File satisfy it.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// DirEntry is a single entry read from a directory handle.
type DirEntry interface {
	// Path is the entry's full path (directory path joined with its name).
	Path() string

	// Info reads the entry's metadata without following symlinks.
	Info() (os.FileInfo, error)
}

// DirHandle is an open directory being drained one entry at a time.
type DirHandle interface {
	// Path is the directory path the handle was opened with.
	Path() string

	// Next returns the next entry, or io.EOF once the directory is drained.
	// Any other error means the entry could not be read; the handle is
	// drained after reporting it and later calls return io.EOF.
	Next() (DirEntry, error)

	// Close releases the handle.
	Close() error
}

// Source is a filesystem the walker can list and the prober can read from.
type Source interface {
	// OpenDir opens path for listing.
	OpenDir(path string) (DirHandle, error)

	// Open opens a file for reading.
	Open(path string) (File, error)
}
