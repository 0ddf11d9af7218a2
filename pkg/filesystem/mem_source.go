package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemSource is an in-memory Source for testing.
// Paths use forward slashes; entries are listed in name order.
type MemSource struct {
	mu          sync.RWMutex
	nodes       map[string]*memNode
	openHandles int
}

// memNode represents a file or directory in the in-memory tree.
type memNode struct {
	path    string
	data    []byte
	modTime time.Time
	isDir   bool

	openErr   error // returned by OpenDir / Open
	infoErr   error // returned by the entry's Info
	readErr   error // returned by the directory handle after readAfter entries
	readAfter int
}

// memFileInfo implements os.FileInfo for in-memory nodes.
type memFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memFileInfo) Sys() interface{}   { return nil }

func (fi *memFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return os.ModeDir | 0o755
	}

	return 0o644
}

// NewMemSource creates an empty in-memory source.
func NewMemSource() *MemSource {
	return &MemSource{
		nodes: make(map[string]*memNode),
	}
}

// AddDir adds a directory (and any missing parents).
func (m *MemSource) AddDir(dirPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mkdirAllLocked(path.Clean(dirPath))
}

// AddFile adds a file with the given content, creating parent directories.
func (m *MemSource) AddFile(filePath string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)
	m.mkdirAllLocked(path.Dir(filePath))
	m.nodes[filePath] = &memNode{
		path:    filePath,
		data:    append([]byte(nil), content...),
		modTime: time.Now(),
	}
}

// FailOpen makes opening nodePath (as a directory or a file) fail with err.
func (m *MemSource) FailOpen(nodePath string, err error) {
	m.withNode(nodePath, func(node *memNode) { node.openErr = err })
}

// FailInfo makes reading nodePath's metadata fail with err.
func (m *MemSource) FailInfo(nodePath string, err error) {
	m.withNode(nodePath, func(node *memNode) { node.infoErr = err })
}

// FailRead makes listing dirPath fail with err after `after` entries were read.
func (m *MemSource) FailRead(dirPath string, after int, err error) {
	m.withNode(dirPath, func(node *memNode) {
		node.readErr = err
		node.readAfter = after
	})
}

// OpenHandles returns the number of directory handles opened and not yet closed.
func (m *MemSource) OpenHandles() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.openHandles
}

// Open opens a file for reading.
func (m *MemSource) Open(filePath string) (File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, exists := m.nodes[path.Clean(filePath)]
	if !exists {
		return nil, &os.PathError{Op: "open", Path: filePath, Err: os.ErrNotExist}
	}

	if node.openErr != nil {
		return nil, &os.PathError{Op: "open", Path: filePath, Err: node.openErr}
	}

	if node.isDir {
		return nil, fmt.Errorf("failed to open %s: is a directory", filePath) //nolint:err113 // Carries the path
	}

	return &memFile{Reader: bytes.NewReader(node.data)}, nil
}

// OpenDir opens a directory for listing. The listing is snapshotted at open time.
func (m *MemSource) OpenDir(dirPath string) (DirHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath = path.Clean(dirPath)

	node, exists := m.nodes[dirPath]
	if !exists {
		return nil, &os.PathError{Op: OpOpenDir, Path: dirPath, Err: os.ErrNotExist}
	}

	if node.openErr != nil {
		return nil, &os.PathError{Op: OpOpenDir, Path: dirPath, Err: node.openErr}
	}

	if !node.isDir {
		return nil, ErrNotDirectory
	}

	m.openHandles++

	return &memDirHandle{
		source:    m,
		path:      dirPath,
		children:  m.childrenLocked(dirPath),
		readErr:   node.readErr,
		readAfter: node.readAfter,
	}, nil
}

func (m *MemSource) withNode(nodePath string, fn func(*memNode)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, exists := m.nodes[path.Clean(nodePath)]
	if !exists {
		panic("memsource: no such node " + nodePath)
	}

	fn(node)
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (m *MemSource) mkdirAllLocked(dirPath string) {
	if dirPath == "." || dirPath == "/" {
		if _, exists := m.nodes[dirPath]; !exists {
			m.nodes[dirPath] = &memNode{path: dirPath, isDir: true, modTime: time.Now()}
		}

		return
	}

	m.mkdirAllLocked(path.Dir(dirPath))

	if _, exists := m.nodes[dirPath]; !exists {
		m.nodes[dirPath] = &memNode{path: dirPath, isDir: true, modTime: time.Now()}
	}
}

// childrenLocked returns the direct children of dirPath sorted by name.
func (m *MemSource) childrenLocked(dirPath string) []*memNode {
	var children []*memNode

	for nodePath, node := range m.nodes {
		if nodePath == dirPath || path.Dir(nodePath) != dirPath {
			continue
		}

		children = append(children, node)
	}

	sort.Slice(children, func(i, j int) bool {
		return strings.Compare(children[i].path, children[j].path) < 0
	})

	return children
}

func (m *MemSource) closeHandle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.openHandles--
}

// memDirHandle implements DirHandle over a snapshot of a directory's children.
type memDirHandle struct {
	source    *MemSource
	path      string
	children  []*memNode
	served    int
	readErr   error
	readAfter int
	closed    bool
}

func (h *memDirHandle) Path() string {
	return h.path
}

func (h *memDirHandle) Next() (DirEntry, error) {
	if h.readErr != nil && h.served == h.readAfter {
		err := h.readErr
		h.readErr = nil
		h.children = nil

		return nil, &os.PathError{Op: OpReadDir, Path: h.path, Err: err}
	}

	if h.served >= len(h.children) {
		return nil, io.EOF
	}

	node := h.children[h.served]
	h.served++

	return &memDirEntry{node: node}, nil
}

func (h *memDirHandle) Close() error {
	if h.closed {
		return os.ErrClosed
	}

	h.closed = true
	h.source.closeHandle()

	return nil
}

// memDirEntry implements DirEntry for an in-memory node.
type memDirEntry struct {
	node *memNode
}

func (e *memDirEntry) Path() string {
	return e.node.path
}

func (e *memDirEntry) Info() (os.FileInfo, error) {
	if e.node.infoErr != nil {
		return nil, &os.PathError{Op: OpLstat, Path: e.node.path, Err: e.node.infoErr}
	}

	return &memFileInfo{
		name:    path.Base(e.node.path),
		size:    int64(len(e.node.data)),
		modTime: e.node.modTime,
		isDir:   e.node.isDir,
	}, nil
}

// memFile implements File over an in-memory copy of the content.
type memFile struct {
	*bytes.Reader
}

func (f *memFile) Close() error {
	return nil
}
