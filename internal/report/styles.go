// Package report renders composite materials for humans: styled terminal
// summaries, ascii mass profiles, and PDF datasheets.
package report

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	layerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88"))

	nestedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444466"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)
