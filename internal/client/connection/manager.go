// Package connection manages the client's WebSocket link to the relay
// server and translates wire messages into typed events for the UI.
package connection

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/protocol"
)

// Manager manages the WebSocket connection to the server
type Manager struct {
	serverURL     string
	conn          *websocket.Conn
	session       *Session
	log           *zap.SugaredLogger
	eventCallback func(Event)
	connected     bool
	mu            sync.RWMutex
	done          chan struct{}
}

// NewManager creates a new connection manager
func NewManager(serverURL string, log *zap.SugaredLogger) *Manager {
	return &Manager{
		serverURL: serverURL,
		session:   NewSession(),
		log:       log,
		connected: false,
		done:      make(chan struct{}),
	}
}

// OnEvent sets the callback for events
func (m *Manager) OnEvent(callback func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCallback = callback
}

// Connect establishes a WebSocket connection to the server
func (m *Manager) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(m.serverURL, nil)
	if err != nil {
		m.sendEvent(DisconnectedEvent{Error: err})
		return err
	}

	m.mu.Lock()
	m.conn = conn
	m.connected = true
	// Fresh done channel per connection attempt so reconnects work.
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.readPump()

	m.sendEvent(ConnectedEvent{})
	return nil
}

// Disconnect closes the WebSocket connection
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return
	}

	m.connected = false

	if m.done != nil {
		select {
		case <-m.done:
			// Already closed
		default:
			close(m.done)
		}
	}

	if m.conn != nil {
		m.conn.Close()
	}
}

// IsConnected returns whether the manager is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Session returns the server-confirmed session state.
func (m *Manager) Session() *Session {
	return m.session
}

//// FROM CLIENT -> SERVER MESSAGES ////

// SendJoin claims a username and enters a room.
func (m *Manager) SendJoin(username, roomID string) error {
	return m.sendMessage(protocol.MsgJoin, protocol.JoinPayload{
		Username: username,
		RoomID:   roomID,
	})
}

// SendChat submits one chat line. Delivery is fire-and-forget: the
// server echoes accepted lines back as chat_line messages.
func (m *Manager) SendChat(text string) error {
	return m.sendMessage(protocol.MsgChat, protocol.ChatPayload{
		Text: text,
	})
}

// SendLeave asks the server to drop us from the room. The server tears
// the connection down in response.
func (m *Manager) SendLeave() error {
	return m.sendMessage(protocol.MsgLeave, nil)
}

////////////////////////////////////////////

// sendMessage sends a message to the server
func (m *Manager) sendMessage(msgType protocol.MessageType, payload interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected || m.conn == nil {
		return websocket.ErrCloseSent
	}

	msg, err := protocol.EncodeMessage(msgType, payload)
	if err != nil {
		return err
	}

	m.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return m.conn.WriteMessage(websocket.TextMessage, msg)
}

// readPump reads messages from the WebSocket connection
func (m *Manager) readPump() {
	defer func() {
		m.mu.Lock()
		m.connected = false
		if m.conn != nil {
			m.conn.Close()
		}
		m.mu.Unlock()
		m.sendEvent(DisconnectedEvent{})
	}()

	for {
		select {
		case <-m.done:
			return
		default:
			_, message, err := m.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					m.log.Warnw("websocket read", "error", err)
				}
				return
			}

			m.handleMessage(message)
		}
	}
}

// handleMessage processes incoming messages
func (m *Manager) handleMessage(data []byte) {
	msg, err := protocol.DecodeMessage(data)
	if err != nil {
		m.log.Warnw("decoding message", "error", err)
		return
	}

	switch msg.Type {
	case protocol.MsgJoined:
		var payload protocol.JoinedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			m.log.Warnw("unmarshaling joined payload", "error", err)
			return
		}
		m.session.setJoined(payload.ConnID, payload.RoomID, payload.Members)

		recent := make([]ChatLine, len(payload.Recent))
		for i, l := range payload.Recent {
			recent[i] = ChatLine(l)
		}
		m.sendEvent(SessionJoinedEvent{
			ConnID:  payload.ConnID,
			RoomID:  payload.RoomID,
			Members: payload.Members,
			Recent:  recent,
		})
		m.log.Infow("joined room", "room", payload.RoomID, "conn_id", payload.ConnID)

	case protocol.MsgChatLine:
		var payload protocol.ChatLinePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			m.log.Warnw("unmarshaling chat line", "error", err)
			return
		}
		m.sendEvent(ChatLineEvent{Line: ChatLine(payload)})

	case protocol.MsgNotice:
		var payload protocol.NoticePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			m.log.Warnw("unmarshaling notice", "error", err)
			return
		}
		m.sendEvent(NoticeEvent{Text: payload.Text, Timestamp: payload.Timestamp})

	case protocol.MsgRosterList:
		var payload protocol.RosterListPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			m.log.Warnw("unmarshaling roster list", "error", err)
			return
		}
		m.session.setMembers(payload.Members)
		m.sendEvent(RosterUpdateEvent{Members: payload.Members})

	case protocol.MsgError:
		var payload protocol.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			m.log.Warnw("unmarshaling error payload", "error", err)
			return
		}
		m.sendEvent(ServerErrorEvent{Message: payload.Message})
		m.log.Warnw("server error", "message", payload.Message)

	default:
		m.log.Debugw("unhandled message type", "type", msg.Type)
	}
}

// sendEvent sends an event to the callback if set
func (m *Manager) sendEvent(event Event) {
	m.mu.RLock()
	callback := m.eventCallback
	m.mu.RUnlock()

	if callback != nil {
		callback(event)
	}
}
