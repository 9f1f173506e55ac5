package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ticktimer/internal/timer"
)

// Catppuccin Mocha, the subset the timer screens use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	tabStyle       = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true).Underline(true).Padding(0, 1)
	clockStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	dimStyle       = lipgloss.NewStyle().Foreground(colorOverlay1)
	statusStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPeach).Padding(0, 1)
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
)

func stateStyle(s timer.State) lipgloss.Style {
	switch s {
	case timer.StateRunning:
		return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	case timer.StateFinished:
		return lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorWarning)
	}
}
