package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/chat"
	"github.com/vantage-game/vantage/internal/client/connection"
	"github.com/vantage-game/vantage/internal/config"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewLogin
	ViewChat
)

// Model is the main Bubble Tea model
type Model struct {
	viewState ViewState
	connMgr   *connection.Manager   // Single connection manager, reused throughout session
	eventChan chan connection.Event // Channel for connection events
	log       *zap.SugaredLogger

	loginInput textinput.Model
	chatInput  textinput.Model
	viewport   viewport.Model
	ready      bool // viewport has been sized by the first WindowSizeMsg

	history    *chat.History    // lines already sent, recalled with up/down
	transcript *chat.Transcript // everything shown in the output area

	width  int
	height int
	err    error

	// Loading screen
	loadingDots      int
	serverURL        string
	roomID           string // Room to join
	userName         string
	connID           string // Connection ID the server assigned us
	members          []string
	reconnectAttempt int  // Current reconnection attempt (0-5)
	maxReconnects    int  // Maximum reconnection attempts
	waitingToRetry   bool // True when waiting for retry delay

	hasNewBelow bool   // lines arrived while scrolled away from the bottom
	status      string // one-line note shown in the status bar
	chatLogPath string // where ctrl+o writes the transcript
}

// NewModel creates a new Bubble Tea model with a connection manager
func NewModel(cfg *config.ClientConfig, log *zap.SugaredLogger) Model {
	// Create ONE connection manager that will be reused for the entire session
	connMgr := connection.NewManager(cfg.ServerURL, log)

	// Create event channel for connection events
	eventChan := make(chan connection.Event, 10)

	// Set up event callback - when server sends events, push to channel
	connMgr.OnEvent(func(event connection.Event) {
		eventChan <- event
	})

	loginInput := textinput.New()
	loginInput.Placeholder = "your name"
	loginInput.CharLimit = 20
	loginInput.Width = 24
	loginInput.SetValue(cfg.Username)

	chatInput := textinput.New()
	chatInput.Placeholder = "say something..."
	chatInput.Prompt = "> "
	chatInput.CharLimit = 256

	return Model{
		viewState:     ViewLoading,
		connMgr:       connMgr,
		eventChan:     eventChan,
		log:           log,
		loginInput:    loginInput,
		chatInput:     chatInput,
		history:       chat.NewHistory(cfg.HistorySize),
		transcript:    chat.NewTranscript(cfg.Scrollback, cfg.Timestamps),
		width:         80,
		height:        24,
		serverURL:     cfg.ServerURL,
		roomID:        cfg.RoomID,
		userName:      cfg.Username,
		maxReconnects: 5,
		chatLogPath:   cfg.ChatLogPath,
	}
}

// NewModelWithView creates a model starting at a specific view (for testing)
func NewModelWithView(view ViewState) Model {
	m := NewModel(config.ClientDefaults(), zap.NewNop().Sugar())
	m.viewState = view
	// Set some defaults for testing
	if view == ViewChat {
		m.userName = "tester"
		m.connID = "conn-test"
		m.viewport = viewport.New(76, 17)
		m.ready = true
		m.chatInput.Focus()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	// Start connection attempt on loading screen using the existing connection manager
	if m.viewState == ViewLoading && m.connMgr != nil {
		return tea.Batch(
			connectCmd(m.connMgr),           // Connect to server
			tickCmd(),                       // Tick for animations
			listenForEventsCmd(m.eventChan), // Listen for server events
			textinput.Blink,
		)
	}
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		// Route to appropriate screen update handler
		switch m.viewState {
		case ViewLoading:
			return m.updateLoading(msg)
		case ViewLogin:
			return m.updateLogin(msg)
		case ViewChat:
			return m.updateChat(msg)
		}

	case tea.MouseMsg:
		if m.viewState == ViewChat {
			return m.updateChatMouse(msg)
		}
		return m, nil

	case connectionSuccessMsg:
		// Connection successful, move to the login screen
		m.reconnectAttempt = 0 // Reset retry counter
		m.waitingToRetry = false
		m.err = nil
		m.viewState = ViewLogin
		focusCmd := m.loginInput.Focus()
		return m, focusCmd

	case connectionErrorMsg:
		// Connection failed
		m.err = msg.err
		m.reconnectAttempt++

		// Retry if we haven't exceeded max attempts
		if m.reconnectAttempt < m.maxReconnects {
			// Wait before retrying (exponential backoff)
			m.waitingToRetry = true
			return m, tea.Batch(
				tickCmd(),
				retryConnectCmd(m.reconnectAttempt),
			)
		}

		// Max retries exceeded, stay on loading screen with error
		m.waitingToRetry = false
		return m, nil

	case retryMsg:
		// Time to retry connection after delay
		if m.viewState == ViewLoading && m.reconnectAttempt < m.maxReconnects {
			m.waitingToRetry = false
			return m, connectCmd(m.connMgr)
		}
		return m, nil

	case connectionEventMsg:
		// Server sent an event - handle it and decide which screen to show
		return m.handleConnectionEvent(msg.event)

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "transcript written to " + msg.path
		}
		return m, nil

	case tickMsg:
		// Update loading animation
		if m.viewState == ViewLoading {
			m.loadingDots = (m.loadingDots + 1) % 4
			return m, tickCmd()
		}
		return m, nil
	}

	// Forward anything else to the focused input so its cursor keeps blinking
	var cmd tea.Cmd
	switch m.viewState {
	case ViewLogin:
		m.loginInput, cmd = m.loginInput.Update(msg)
	case ViewChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewLoading:
		return m.viewLoading()
	case ViewLogin:
		return m.viewLogin()
	case ViewChat:
		return m.viewChat()
	}
	return ""
}

// Disconnect safely disconnects the connection manager
func (m *Model) Disconnect() {
	if m.connMgr != nil {
		m.connMgr.Disconnect()
	}
}

// resize recomputes component dimensions after a terminal size change.
// Layout: header (1) + bordered transcript + bordered input (3) + status (1).
func (m *Model) resize() {
	vpWidth := m.width - 4
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := m.height - 7
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.chatInput.Width = vpWidth - 4

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Add new event handlers below when you add new event types in connection/events.go
func (m Model) handleConnectionEvent(event connection.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {

	case connection.ConnectedEvent:
		// Server connected - we already handle this in connectionSuccessMsg
		return m, listenForEventsCmd(m.eventChan)

	case connection.DisconnectedEvent:
		// Lost connection - go back to loading screen and start retrying
		m.viewState = ViewLoading
		m.err = e.Error
		m.reconnectAttempt++
		if m.reconnectAttempt < m.maxReconnects {
			m.waitingToRetry = true
			return m, tea.Batch(
				tickCmd(),
				retryConnectCmd(m.reconnectAttempt),
				listenForEventsCmd(m.eventChan),
			)
		}
		return m, listenForEventsCmd(m.eventChan)

	// ============================================
	// SESSION EVENTS
	// ============================================
	case connection.SessionJoinedEvent:
		// Server accepted our name - enter the chat room
		m.connID = e.ConnID
		m.roomID = e.RoomID
		m.members = e.Members
		m.err = nil
		m.viewState = ViewChat
		m.loginInput.Blur()

		// Replay the recent backlog with its original send times
		for _, line := range e.Recent {
			m.appendChatLine(line)
		}
		if m.ready {
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
		}
		m.hasNewBelow = false
		focusCmd := m.chatInput.Focus()
		return m, tea.Batch(
			focusCmd,
			listenForEventsCmd(m.eventChan),
		)

	// ============================================
	// CHAT EVENTS
	// ============================================
	case connection.ChatLineEvent:
		m.appendChatLine(e.Line)
		m.refreshTranscript()
		return m, listenForEventsCmd(m.eventChan)

	case connection.NoticeEvent:
		m.transcript.AppendAt(time.Unix(e.Timestamp, 0), e.Text, "")
		m.refreshTranscript()
		return m, listenForEventsCmd(m.eventChan)

	case connection.RosterUpdateEvent:
		m.members = e.Members
		return m, listenForEventsCmd(m.eventChan)

	case connection.ServerErrorEvent:
		// Server rejected something - show it where the user is looking
		if m.viewState == ViewLogin {
			m.err = errors.New(e.Message)
		} else {
			m.status = e.Message
		}
		return m, listenForEventsCmd(m.eventChan)

	default:
		// Unknown event type - just keep listening
		return m, listenForEventsCmd(m.eventChan)
	}
}

// appendChatLine formats a relayed chat line into the transcript, stamped
// with its original send time rather than the arrival time.
func (m *Model) appendChatLine(line connection.ChatLine) {
	m.transcript.AppendAt(time.Unix(line.Timestamp, 0), line.Username+": "+line.Text, line.ConnID)
}

// refreshTranscript re-renders the viewport. The scroll position stays
// pinned to the bottom only when it was already there, so reading old
// lines is never interrupted by new ones.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if wasAtBottom {
		m.viewport.GotoBottom()
	} else {
		m.hasNewBelow = true
	}
}
