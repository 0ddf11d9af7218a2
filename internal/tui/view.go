package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/joe/music-scan/internal/report"
)

// minPathWidth keeps very narrow terminals from truncating paths to nothing.
const minPathWidth = 20

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	builder.WriteString(report.TitleStyle().Render("music-scan"))
	builder.WriteString(" ")
	builder.WriteString(report.DimStyle().Render(m.root))
	builder.WriteString("\n\n")

	builder.WriteString(m.statusLine())
	builder.WriteString("\n\n")

	builder.WriteString(m.renderCounts())

	if m.current != "" && !m.done {
		builder.WriteString("\n")
		builder.WriteString(report.LabelStyle().Render("Current:"))
		builder.WriteString(" ")
		builder.WriteString(truncatePath(m.current, m.pathWidth()))
		builder.WriteString("\n")
	}

	if len(m.recentErrors) > 0 {
		builder.WriteString("\n")
		builder.WriteString(report.ErrorStyle().Render("Recent errors:"))
		builder.WriteString("\n")

		for _, walkErr := range m.recentErrors {
			fmt.Fprintf(&builder, "  %s %s %s\n",
				report.ErrorSymbol(),
				report.PathErrorStyle().Render(truncatePath(report.DisplayPath(walkErr), m.pathWidth())),
				report.DimStyle().Render("("+walkErr.Kind.String()+")"))
		}
	}

	if !m.done {
		builder.WriteString("\n")
		builder.WriteString(report.DimStyle().Render(m.helpText()))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (m *Model) statusLine() string {
	switch {
	case m.done && m.err != nil:
		return report.ErrorStyle().Render(report.ErrorSymbol() + " Scan failed: " + m.err.Error())
	case m.done:
		return report.SuccessStyle().Render(report.SuccessSymbol() + " Scan finished")
	case m.cancelling:
		return m.spinner.View() + " " + report.WarningStyle().Render("Cancelling...")
	default:
		return m.spinner.View() + " Scanning... " + report.DimStyle().Render(report.FormatDuration(m.elapsed()))
	}
}

func (m *Model) renderCounts() string {
	var builder strings.Builder

	row := func(label string, value int) {
		fmt.Fprintf(&builder, "%s %d\n", report.LabelStyle().Render(fmt.Sprintf("%-13s", label+":")), value)
	}

	row("Found", m.stats.Found)

	if m.stats.Skipped > 0 {
		row("Skipped", m.stats.Skipped)
	}

	row("Probed", m.stats.Probed)
	row("Unsupported", m.stats.Unsupported)
	row("Unreadable", m.stats.ProbeFailures)
	row("Walk errors", m.stats.WalkErrors)

	return builder.String()
}

func (m *Model) helpText() string {
	if m.cancelling {
		return "Press q again to quit without waiting"
	}

	return "Press q or ctrl+c to cancel"
}

// elapsed prefers the engine's clock and falls back to the tick clock.
func (m *Model) elapsed() time.Duration {
	if m.stats.Elapsed > 0 {
		return m.stats.Elapsed
	}

	if m.started.IsZero() {
		return 0
	}

	return m.now.Sub(m.started)
}

func (m *Model) pathWidth() int {
	const labelOverhead = 12

	if m.width == 0 {
		return 0
	}

	return max(m.width-labelOverhead, minPathWidth)
}

// truncatePath keeps the end of path, which names the file, within width
// runes. A width of 0 means no limit.
func truncatePath(path string, width int) string {
	const ellipsis = "..."

	runes := []rune(path)
	if width <= 0 || len(runes) <= width {
		return path
	}

	if width <= len(ellipsis) {
		return string(runes[len(runes)-width:])
	}

	return ellipsis + string(runes[len(runes)-width+len(ellipsis):])
}
