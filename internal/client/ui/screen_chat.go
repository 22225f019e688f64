package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Chat line rendering styles
var (
	ownLineStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	peerLineStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	noticeLineStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	newBelowStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
)

// updateChat handles the chat room screen
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.connMgr != nil {
			m.connMgr.Disconnect()
		}
		return m, tea.Quit

	case "enter":
		return m.submitLine()

	case "up":
		// Step back through previously sent lines
		if line, ok := m.history.RecallOlder(); ok {
			m.chatInput.SetValue(line)
			m.chatInput.CursorEnd()
		}
		return m, nil

	case "down":
		// Step forward again; walking past the newest line clears the field
		if line, ok := m.history.RecallNewer(); ok {
			m.chatInput.SetValue(line)
			m.chatInput.CursorEnd()
		}
		return m, nil

	case "esc":
		// Abandon the recall walk
		if m.history.IsRecalling() {
			m.history.ResetCursor()
			m.chatInput.SetValue("")
		}
		return m, nil

	case "pgup":
		m.viewport.ViewUp()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		if m.viewport.AtBottom() {
			m.hasNewBelow = false
		}
		return m, nil

	case "end":
		m.viewport.GotoBottom()
		m.hasNewBelow = false
		return m, nil

	case "ctrl+l":
		// Wipe the output area
		m.transcript.Clear()
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		m.hasNewBelow = false
		return m, nil

	case "ctrl+o":
		// Dump the transcript to the chat log file
		return m, exportCmd(m.chatLogPath, m.transcript.Contents())
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// submitLine records the input field for recall and sends it to the
// server. The field is cleared either way; lines with nothing but
// whitespace are dropped without being sent or recorded. A line that
// fails to send stays recallable, so it can be resent after a reconnect.
func (m Model) submitLine() (tea.Model, tea.Cmd) {
	line := m.chatInput.Value()
	m.chatInput.SetValue("")

	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.history.Submit(line)

	if m.connMgr == nil || !m.connMgr.IsConnected() {
		m.status = "not connected"
		return m, nil
	}
	if err := m.connMgr.SendChat(line); err != nil {
		m.status = "send failed: " + err.Error()
		return m, nil
	}

	m.status = ""
	return m, nil
}

// updateChatMouse scrolls the transcript with the mouse wheel
func (m Model) updateChatMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(3)
	default:
		return m, nil
	}
	if m.viewport.AtBottom() {
		m.hasNewBelow = false
	}
	return m, nil
}

// viewChat renders the chat room: transcript on top, input below, status last
func (m Model) viewChat() string {
	if !m.ready {
		return "\n  Entering the room..."
	}

	header := m.renderHeader()
	transcriptBox := chatBoxStyle.Render(m.viewport.View())
	inputBox := chatInputStyle.Width(m.viewport.Width).Render(m.chatInput.View())
	statusBar := m.renderChatStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		transcriptBox,
		inputBox,
		statusBar,
	)
}

// renderTranscript renders transcript lines wrapped to the viewport width.
// Lines are colored by origin: our own, another member's, or a notice.
func (m Model) renderTranscript() string {
	width := m.viewport.Width
	if width < 1 {
		width = 1
	}

	lines := m.transcript.Lines()
	if len(lines) == 0 {
		return mutedStyle.Render("No messages yet.")
	}

	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := peerLineStyle
		switch {
		case ln.ConnID == "":
			style = noticeLineStyle
		case ln.ConnID == m.connID:
			style = ownLineStyle
		}
		b.WriteString(style.Render(wordwrap.String(ln.Text, width)))
	}
	return b.String()
}

// renderHeader renders the room name and who is in it
func (m Model) renderHeader() string {
	title := headerStyle.Render("◆ " + m.roomID)
	who := mutedStyle.Render(fmt.Sprintf("%d here: %s", len(m.members), strings.Join(m.members, ", ")))

	header := title + "  " + who
	if m.hasNewBelow {
		header += "  " + newBelowStyle.Render("▼ new messages below")
	}
	return header
}

// renderChatStatusBar renders the bottom key hints and any transient note
func (m Model) renderChatStatusBar() string {
	hints := mutedStyle.Render(
		"↑/↓ resend history  •  PGUP/PGDN scroll  •  CTRL+L clear  •  CTRL+O save log  •  CTRL+C quit")
	if m.status != "" {
		return mutedStyle.Render(m.status) + "  •  " + hints
	}
	return hints
}
