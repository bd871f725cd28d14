package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	toolbar   lipgloss.Style
	button    lipgloss.Style
	pane      lipgloss.Style
	preview   lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	notice    lipgloss.Style
	prompt    lipgloss.Style
}

func defaultStyles() styles {
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	accent := lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warn := lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"}

	return styles{
		toolbar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle),
		button: lipgloss.NewStyle().Padding(0, 1).Foreground(accent),
		pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtle),
		preview: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent),
		status:    lipgloss.NewStyle().Faint(true),
		statusErr: lipgloss.NewStyle().Foreground(warn),
		notice: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(warn).
			Padding(1, 3),
		prompt: lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}
