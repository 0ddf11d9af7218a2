package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/fs"
	"github.com/pkg/sftp"
)

// OpenFunc opens a file on a listing source.
type OpenFunc func(path string) (File, error)

// fsSource implements Source on top of a kr/fs FileSystem, which lists a whole
// directory per call. *sftp.Client is such a FileSystem.
type fsSource struct {
	fsys fs.FileSystem
	open OpenFunc
}

// NewFSSource returns a Source that lists directories through fsys and opens
// files through open.
func NewFSSource(fsys fs.FileSystem, open OpenFunc) Source {
	return &fsSource{fsys: fsys, open: open}
}

// NewSFTPSource returns a Source backed by an SFTP session.
// Remote paths always use forward slashes.
func NewSFTPSource(client *sftp.Client) Source {
	return NewFSSource(client, func(path string) (File, error) {
		file, err := client.Open(path)
		if err != nil {
			return nil, err
		}

		return file, nil
	})
}

// Open opens a file for reading.
func (s *fsSource) Open(path string) (File, error) {
	if s.open == nil {
		return nil, fmt.Errorf("failed to open %s: source is list-only", path) //nolint:err113 // Carries the path
	}

	file, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// OpenDir lists path. The listing is read in full up front, so read failures
// surface here as open failures.
func (s *fsSource) OpenDir(path string) (DirHandle, error) {
	infos, err := s.fsys.ReadDir(path)
	if err != nil {
		return nil, err
	}

	return &fsDirHandle{fsys: s.fsys, path: path, infos: infos}, nil
}

// fsDirHandle hands out a pre-read listing one entry at a time.
type fsDirHandle struct {
	fsys  fs.FileSystem
	path  string
	infos []os.FileInfo
}

func (h *fsDirHandle) Path() string {
	return h.path
}

func (h *fsDirHandle) Next() (DirEntry, error) {
	if len(h.infos) == 0 {
		return nil, io.EOF
	}

	info := h.infos[0]
	h.infos[0] = nil
	h.infos = h.infos[1:]

	return &fsDirEntry{path: h.fsys.Join(h.path, info.Name()), info: info}, nil
}

func (h *fsDirHandle) Close() error {
	h.infos = nil
	return nil
}

// fsDirEntry carries the metadata returned by the listing.
type fsDirEntry struct {
	path string
	info os.FileInfo
}

func (e *fsDirEntry) Path() string {
	return e.path
}

func (e *fsDirEntry) Info() (os.FileInfo, error) {
	return e.info, nil
}
