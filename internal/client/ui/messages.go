package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vantage-game/vantage/internal/chat"
	"github.com/vantage-game/vantage/internal/client/connection"
)

// connectionSuccessMsg is sent when connection is established
type connectionSuccessMsg struct{}

// connectionErrorMsg is sent when connection fails
type connectionErrorMsg struct {
	err error
}

// connectionEventMsg wraps events from the connection manager
type connectionEventMsg struct {
	event connection.Event
}

// retryMsg is sent when the retry delay has elapsed
type retryMsg struct{}

// exportDoneMsg is sent when a transcript export has finished
type exportDoneMsg struct {
	path string
	err  error
}

// tickMsg is sent periodically for animations
type tickMsg time.Time

// connectCmd attempts to connect to the server
func connectCmd(mgr *connection.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.Connect(); err != nil {
			return connectionErrorMsg{err: err}
		}
		return connectionSuccessMsg{}
	}
}

// retryConnectCmd waits out the backoff delay before the next connection
// attempt. The delay grows with each failed attempt.
func retryConnectCmd(attempt int) tea.Cmd {
	delay := time.Duration(attempt) * 2 * time.Second
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return retryMsg{}
	})
}

// listenForEventsCmd waits for the next event from the connection manager.
// Whoever handles the resulting message must issue this command again to
// keep the pipeline alive.
func listenForEventsCmd(events <-chan connection.Event) tea.Cmd {
	return func() tea.Msg {
		return connectionEventMsg{event: <-events}
	}
}

// exportCmd writes a transcript snapshot to path in the background
func exportCmd(path, contents string) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: chat.WriteTranscript(path, contents)}
	}
}

// tickCmd returns a command that sends tick messages for animations
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
