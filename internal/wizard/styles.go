package wizard

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	warnFg    = lipgloss.Color("#D97706")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg).Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	warnStyle   = lipgloss.NewStyle().Foreground(warnFg)
	cursorStyle = lipgloss.NewStyle().Foreground(accentFg)
)
