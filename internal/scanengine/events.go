package scanengine

import (
	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

// Event is the interface implemented by all scan engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// ScanStarted is emitted once, before the first path is pulled.
type ScanStarted struct {
	Root string
}

func (ScanStarted) isEvent() {}

// FileFound is emitted for every path the walk produces.
type FileFound struct {
	Path string
}

func (FileFound) isEvent() {}

// FileSkipped is emitted when a found file does not match the include filter.
type FileSkipped struct {
	Path string
}

func (FileSkipped) isEvent() {}

// FileProbed is emitted when a file's metadata was read.
type FileProbed struct {
	Path     string
	Metadata *probe.SongMetadata
}

func (FileProbed) isEvent() {}

// ProbeFailed is emitted when a file could not be opened or probed.
// Unsupported formats are reported here too.
type ProbeFailed struct {
	Path string
	Err  error
}

func (ProbeFailed) isEvent() {}

// WalkErrorRecorded is emitted for each error the walker records, in
// discovery order.
type WalkErrorRecorded struct {
	Err filesystem.WalkError
}

func (WalkErrorRecorded) isEvent() {}

// ScanProgress is emitted every ProgressInterval found files.
type ScanProgress struct {
	Stats Stats
}

func (ScanProgress) isEvent() {}

// ScanComplete is emitted when the scan ends, including when it was cancelled.
type ScanComplete struct {
	Result *Result
}

func (ScanComplete) isEvent() {}
