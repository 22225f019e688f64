package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Cool steel tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#9EC5E8") // Light steel blue
	secondaryColor = lipgloss.Color("#7EA8BB") // Muted teal
	accentColor    = lipgloss.Color("#A4C2C9") // Soft ice blue
	successColor   = lipgloss.Color("#9CD9C8") // Bright mint
	mutedColor     = lipgloss.Color("#90A0B8") // Light slate
	fgColor        = lipgloss.Color("#EDF1F5") // Cool white
	highlightColor = lipgloss.Color("#B4D4F0") // Pale sky highlight
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Align(lipgloss.Center)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(30)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				Margin(1, 0)

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	chatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E08B8B")).
			Bold(true)
)
