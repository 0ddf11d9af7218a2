package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/pkg/probe"
)

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// RenderSummary renders the counts and timing of a scan in a box.
func RenderSummary(result *scanengine.Result) string {
	if result == nil {
		return ""
	}

	stats := result.Stats

	var headline string

	switch {
	case result.Cancelled:
		headline = WarningStyle().Render(WarningSymbol() + " Scan cancelled")
	case stats.Failed():
		headline = WarningStyle().Render(WarningSymbol() + " Scan complete with errors")
	default:
		headline = SuccessStyle().Render(SuccessSymbol() + " Scan complete")
	}

	var builder strings.Builder

	builder.WriteString(headline)
	builder.WriteString("\n\n")

	row := func(label string, value any) {
		fmt.Fprintf(&builder, "%s %v\n", LabelStyle().Render(fmt.Sprintf("%-15s", label+":")), value)
	}

	row("Root", result.Root)
	row("Files found", stats.Found)

	if stats.Skipped > 0 {
		row("Skipped", stats.Skipped)
	}

	row("Probed", stats.Probed)
	row("Unsupported", stats.Unsupported)
	row("Unreadable", stats.ProbeFailures)
	row("Walk errors", stats.WalkErrors)
	row("Elapsed", FormatDuration(stats.Elapsed))
	row("Rate", fmt.Sprintf("%.1f files/s", stats.FilesPerSecond()))

	return BoxStyle().Render(strings.TrimRight(builder.String(), "\n"))
}

// describe renders the one-line text form of probed metadata.
func describe(meta *probe.SongMetadata) string {
	if meta == nil {
		return ""
	}

	parts := make([]string, 0, 4) //nolint:mnd // codec, rate, duration, title

	if meta.Codec != "" {
		parts = append(parts, meta.Codec)
	}

	if meta.SampleRate != nil {
		parts = append(parts, fmt.Sprintf("%d Hz", *meta.SampleRate))
	}

	if meta.Duration != nil {
		parts = append(parts, FormatDuration(time.Duration(*meta.Duration*float64(time.Second))))
	}

	switch {
	case meta.Artist != "" && meta.Title != "":
		parts = append(parts, meta.Artist+" - "+meta.Title)
	case meta.Title != "":
		parts = append(parts, meta.Title)
	}

	return strings.Join(parts, ", ")
}
