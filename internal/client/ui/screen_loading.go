package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []rune("◐◓◑◒")

// updateLoading handles loading screen updates
func (m Model) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

// viewLoading renders the loading/connection screen
func (m Model) viewLoading() string {
	// Title
	title := titleStyle.Render("◆ VANTAGE")
	subtitle := subtitleStyle.Render("Connecting to the relay...")

	// Animated loading dots
	dots := strings.Repeat(".", m.loadingDots)
	spinner := spinnerStyle.Render(string(spinnerFrames[m.loadingDots%len(spinnerFrames)]))

	loadingText := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("Establishing connection" + dots)
	if m.waitingToRetry {
		loadingText = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf("Retrying (attempt %d of %d)%s", m.reconnectAttempt, m.maxReconnects, dots))
	}

	status := lipgloss.JoinVertical(
		lipgloss.Center,
		spinner+" "+loadingText,
	)

	// Error message if connection failed
	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Render("\n\n✗ Connection failed: " + m.err.Error())
		if !m.waitingToRetry {
			errorMsg += mutedStyle.Render("\nPress ESC to quit")
		}
	}

	// Main content
	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"\n\n",
		status,
		errorMsg,
	)

	// Instructions at bottom
	instructions := instructionStyle.Render(
		mutedStyle.Render("Connecting to ") + highlightStyle.Render(m.serverURL) + "  •  " +
			mutedStyle.Render("ESC to quit"))

	// Layout
	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	return centeredMain + "\n" + bottomInstructions
}
