package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/config"
	"github.com/vantage-game/vantage/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second    //time allowed to read the next pong message from client
	pingPeriod     = (pongWait * 9) / 10 //send pings to client with this period. must be less than pongWait
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{ //upgrade HTTP connections to WebSocket connections
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // terminal clients connect from anywhere
	},
}

// Client represents one WebSocket connection to the relay.
type Client struct {
	ID       string
	Username string
	Room     *Room
	conn     *websocket.Conn
	send     chan []byte
}

// Server relays chat between clients grouped into rooms.
type Server struct {
	rooms *RoomManager
	log   *zap.SugaredLogger
}

// NewServer creates a chat relay server.
func NewServer(cfg *config.ServerConfig, log *zap.SugaredLogger) *Server {
	return &Server{
		rooms: NewRoomManager(cfg.ReplayLines, cfg.RoomBacklog, log),
		log:   log,
	}
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 256),
	}

	s.log.Debugw("connection opened", "conn_id", client.ID, "remote", conn.RemoteAddr())

	go client.writePump()
	go client.readPump(s)
}

// readPump pumps messages from the WebSocket connection to the room
func (c *Client) readPump(s *Server) {
	defer func() {
		if c.Room != nil {
			c.Room.unregister <- c
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warnw("websocket read", "conn_id", c.ID, "error", err)
			}
			break
		}

		if leaving := c.handleMessage(s, message); leaving {
			break
		}
	}
}

// writePump pumps messages from the room to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage handles one incoming message from the client. It
// reports whether the client asked to leave, which ends the read loop.
func (c *Client) handleMessage(s *Server, data []byte) bool {
	msg, err := protocol.DecodeMessage(data)
	if err != nil {
		s.log.Warnw("decoding message", "conn_id", c.ID, "error", err)
		return false
	}

	switch msg.Type {
	case protocol.MsgJoin:
		var payload protocol.JoinPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.log.Warnw("unmarshaling join payload", "conn_id", c.ID, "error", err)
			return false
		}

		if c.Room != nil {
			c.sendError("already in a room")
			return false
		}

		username := strings.TrimSpace(payload.Username)
		room := s.rooms.GetOrCreateRoom(payload.RoomID)
		if err := room.Roster.Claim(username, c); err != nil {
			s.log.Infow("join rejected", "conn_id", c.ID, "username", username, "reason", err)
			c.sendError(err.Error())
			return false
		}

		c.Username = username
		c.Room = room
		room.register <- c

	case protocol.MsgChat:
		var payload protocol.ChatPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.log.Warnw("unmarshaling chat payload", "conn_id", c.ID, "error", err)
			return false
		}

		if c.Room == nil {
			c.sendError("join a room before chatting")
			return false
		}
		if strings.TrimSpace(payload.Text) == "" {
			return false
		}

		line := protocol.ChatLinePayload{
			ConnID:    c.ID,
			Username:  c.Username,
			Text:      payload.Text,
			Timestamp: time.Now().Unix(),
		}
		c.Room.Backlog.Record(line)

		delivered, err := protocol.EncodeMessage(protocol.MsgChatLine, line)
		if err != nil {
			s.log.Errorw("encoding chat line", "error", err)
			return false
		}
		c.Room.broadcast <- delivered

	case protocol.MsgLeave:
		// Treated like a disconnect: the read loop ends and its deferred
		// unregister tears the connection down.
		return true

	default:
		s.log.Debugw("unhandled message type", "conn_id", c.ID, "type", msg.Type)
	}

	return false
}

// sendError queues an error payload for this client. The error is
// dropped if the client's send buffer is full.
func (c *Client) sendError(text string) {
	msg, err := protocol.EncodeMessage(protocol.MsgError, protocol.ErrorPayload{Message: text})
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
