// Package tui shows a running scan: live counts, the path being visited and
// the most recent walk errors. The scan runs inside the program; quitting
// cancels it.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/music-scan/internal/report"
	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/pkg/filesystem"
	"github.com/joe/music-scan/pkg/probe"
)

// RecentErrorCount is how many walk errors stay on screen.
const RecentErrorCount = 5

// RunFunc runs a scan to completion or until ctx is cancelled.
type RunFunc func(ctx context.Context) (*scanengine.Result, error)

// ScanFinishedMsg is sent when the RunFunc returns.
type ScanFinishedMsg struct {
	Result *scanengine.Result
	Err    error
}

// Model is the bubbletea model for a single scan.
type Model struct {
	ctx    context.Context //nolint:containedctx // Owned by the running program
	cancel context.CancelFunc
	run    RunFunc
	bridge *EventBridge

	spinner spinner.Model
	width   int

	root         string
	stats        scanengine.Stats
	current      string
	recentErrors []filesystem.WalkError
	started      time.Time
	now          time.Time

	cancelling bool
	done       bool
	result     *scanengine.Result
	err        error
}

// NewModel returns a model that runs run when the program starts and shows
// the events bridge receives.
func NewModel(ctx context.Context, root string, run RunFunc, bridge *EventBridge) *Model {
	ctx, cancel := context.WithCancel(ctx)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(report.PrimaryColor())

	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		run:     run,
		bridge:  bridge,
		spinner: spin,
		root:    root,
	}
}

// Result returns the scan result once the program has quit.
func (m *Model) Result() *scanengine.Result {
	return m.result
}

// Err returns the error the scan ended with, if any.
func (m *Model) Err() error {
	return m.err
}

// Cancelled reports whether the user asked the scan to stop.
func (m *Model) Cancelled() bool {
	return m.cancelling
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bridge.ListenCmd(),
		m.runScan(),
		TickCmd(),
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case EngineEventMsg:
		m.handleEvent(msg.Event)
		return m, m.bridge.ListenCmd()
	case ScanFinishedMsg:
		return m.handleFinished(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case TickMsg:
		if m.done {
			return m, nil
		}

		m.now = time.Time(msg)
		if m.started.IsZero() {
			m.started = m.now
		}

		return m, TickCmd()
	}

	return m, nil
}

func (m *Model) runScan() tea.Cmd {
	ctx, run := m.ctx, m.run

	return func() tea.Msg {
		result, err := run(ctx)
		return ScanFinishedMsg{Result: result, Err: err}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		// A second request stops waiting for the engine.
		if m.cancelling {
			return m, tea.Quit
		}

		m.cancelling = true
		m.cancel()
	}

	return m, nil
}

func (m *Model) handleEvent(event scanengine.Event) {
	switch event := event.(type) {
	case scanengine.ScanStarted:
		m.root = event.Root
	case scanengine.FileFound:
		m.stats.Found++
		m.current = event.Path
	case scanengine.FileSkipped:
		m.stats.Skipped++
	case scanengine.FileProbed:
		m.stats.Probed++
	case scanengine.ProbeFailed:
		if errors.Is(event.Err, probe.ErrUnsupportedFormat) {
			m.stats.Unsupported++
		} else {
			m.stats.ProbeFailures++
		}
	case scanengine.WalkErrorRecorded:
		m.stats.WalkErrors++
		m.recentErrors = append(m.recentErrors, event.Err)

		if len(m.recentErrors) > RecentErrorCount {
			m.recentErrors = m.recentErrors[len(m.recentErrors)-RecentErrorCount:]
		}
	case scanengine.ScanProgress:
		m.stats = event.Stats
	case scanengine.ScanComplete:
		if event.Result != nil {
			m.stats = event.Result.Stats
		}
	}
}

func (m *Model) handleFinished(msg ScanFinishedMsg) (tea.Model, tea.Cmd) {
	m.done = true
	m.result = msg.Result
	m.err = msg.Err

	if msg.Result != nil {
		m.stats = msg.Result.Stats
	}

	m.cancel()

	return m, tea.Quit
}
