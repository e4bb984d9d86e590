package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#EF4444")
	hoverFg   = lipgloss.Color("#FFA500")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	statusError = lipgloss.NewStyle().Foreground(errorFg)

	hoverMarker = lipgloss.NewStyle().Foreground(hoverFg).Render("◯")
)

// statusStyle highlights failed loads and rejected pastes.
func statusStyle(status string) lipgloss.Style {
	if strings.HasPrefix(status, "wkt error") || strings.HasPrefix(status, "load error") {
		return statusError
	}
	return dimStyle
}
