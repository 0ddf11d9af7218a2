package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/music-scan/internal/scanengine"
)

// EventBufferSize is how many engine events may queue before new ones are dropped.
const EventBufferSize = 256

// EngineEventMsg wraps a scanengine.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event scanengine.Event
}

// EventBridge adapts scanengine events to bubble tea messages.
// It implements scanengine.EventEmitter and provides a channel for TUI consumption.
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, EventBufferSize),
	}
}

// Emit implements scanengine.EventEmitter. It never blocks the engine: when
// the buffer is full the event is dropped. ScanProgress and ScanComplete
// carry full counts, so the display catches up.
func (b *EventBridge) Emit(event scanengine.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	select {
	case b.eventChan <- EngineEventMsg{Event: event}:
	default:
	}
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel. Emit after Close is a no-op.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
