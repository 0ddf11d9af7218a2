package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickInterval is how often the elapsed time is refreshed.
const TickInterval = 100 * time.Millisecond

// TickMsg is a message sent on each tick interval
type TickMsg time.Time

// TickCmd returns a command that sends tick messages at regular intervals
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
