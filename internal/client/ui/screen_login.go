package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateLogin handles the name entry screen
func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		name := strings.TrimSpace(m.loginInput.Value())
		if name == "" {
			return m, nil
		}
		m.userName = name

		// Ask the server to put us in the room
		if m.connMgr != nil && m.connMgr.IsConnected() {
			if err := m.connMgr.SendJoin(name, m.roomID); err != nil {
				m.err = err
				return m, nil
			}
			// Server will respond with an event, which will trigger screen transition
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}

// viewLogin renders the name entry screen
func (m Model) viewLogin() string {
	// Title
	title := titleStyle.Render("◆ WELCOME TO VANTAGE")
	subtitle := subtitleStyle.Render("A Terminal Chat Room")

	// Prompt
	promptText := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Margin(2, 0).
		Render("Enter your name:")

	inputField := inputBoxStyle.Render(m.loginInput.View())

	// Rejected name or failed send
	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Render("\n✗ " + m.err.Error())
	}

	// Main content (title + input)
	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"\n\n\n",
		promptText,
		inputField,
		errorMsg,
	)

	// Instructions at the bottom
	instructions := instructionStyle.Render(
		"Press " + highlightStyle.Render("ENTER") + " to join " + highlightStyle.Render(m.roomID) + "  •  " +
			mutedStyle.Render("ESC to quit"))

	// Calculate positions - main content in center, instructions at bottom
	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	// Combine
	return centeredMain + "\n" + bottomInstructions
}
