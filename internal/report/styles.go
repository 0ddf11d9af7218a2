package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPadding is the default padding for boxed output
const DefaultPadding = 2

//nolint:gochecknoglobals // Decided once per process from the terminal type
var unicodeDisabled = os.Getenv("TERM") == "dumb"

// ErrorSymbol returns a cross with ASCII fallback
func ErrorSymbol() string {
	if unicodeDisabled {
		return "[x]"
	}

	return "✗"
}

// SuccessSymbol returns a check mark with ASCII fallback
func SuccessSymbol() string {
	if unicodeDisabled {
		return "[ok]"
	}

	return "✓"
}

// WarningSymbol returns a warning sign with ASCII fallback
func WarningSymbol() string {
	if unicodeDisabled {
		return "[!]"
	}

	return "⚠"
}

func AccentColor() lipgloss.Color    { return lipgloss.Color(accentColorCode) }
func DimColor() lipgloss.Color       { return lipgloss.Color(dimColorCode) }
func ErrorColor() lipgloss.Color     { return lipgloss.Color(errorColorCode) }
func HighlightColor() lipgloss.Color { return lipgloss.Color(highlightColorCode) }
func SuccessColor() lipgloss.Color   { return lipgloss.Color(successColorCode) }
func WarningColor() lipgloss.Color   { return lipgloss.Color(warningColorCode) }

// PrimaryColor returns the primary color for the UI
func PrimaryColor() lipgloss.Color { return lipgloss.Color(primaryColorCode) }

// BoxStyle returns the style for boxes with padding
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor()).
		Padding(0, DefaultPadding)
}

// DimStyle returns the style for dimmed text
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(DimColor())
}

// ErrorStyle returns the style for error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor()).
		Bold(true)
}

// LabelStyle returns the style for labels
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(HighlightColor()).
		Bold(true)
}

// PathErrorStyle returns the style for the path of a failed entry
func PathErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor())
}

// SuccessStyle returns the style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(SuccessColor()).
		Bold(true)
}

// TitleStyle returns the style for titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor())
}

// WarningStyle returns the style for warning messages
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(WarningColor()).
		Bold(true)
}

// unexported constants.
const (
	accentColorCode    = "62"  // Blue
	dimColorCode       = "240" // Dark gray
	errorColorCode     = "196" // Red
	highlightColorCode = "86"  // Cyan
	primaryColorCode   = "205" // Pink/purple
	successColorCode   = "42"  // Green
	warningColorCode   = "226"
)
