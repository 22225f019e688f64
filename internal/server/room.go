package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/protocol"
)

// Room is one chat room: the clients in it, their usernames, and the
// recent chat lines kept for replay.
type Room struct {
	ID      string
	Backlog *Backlog
	Roster  *Roster

	// clients is touched only by the Run goroutine.
	clients     map[string]*Client
	replayLines int
	log         *zap.SugaredLogger

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewRoom creates a chat room. replayLines is how much backlog a
// joining client receives; backlogSize is how much the room retains.
func NewRoom(id string, replayLines, backlogSize int, log *zap.SugaredLogger) *Room {
	return &Room{
		ID:          id,
		Backlog:     NewBacklog(backlogSize),
		Roster:      NewRoster(),
		clients:     make(map[string]*Client),
		replayLines: replayLines,
		log:         log,

		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the room's main loop
func (r *Room) Run() {
	for {
		select {
		case client := <-r.register:
			r.handleRegister(client)

		case client := <-r.unregister:
			r.handleUnregister(client)

		case message := <-r.broadcast:
			r.fanOut(message)
		}
	}
}

func (r *Room) handleRegister(client *Client) {
	r.clients[client.ID] = client

	r.log.Infow("player joined room", "room", r.ID, "username", client.Username, "conn_id", client.ID)

	// Catch the new client up before anyone else hears about them.
	joined, err := protocol.EncodeMessage(protocol.MsgJoined, protocol.JoinedPayload{
		ConnID:  client.ID,
		RoomID:  r.ID,
		Members: r.Roster.Names(),
		Recent:  r.Backlog.Recent(r.replayLines),
	})
	if err != nil {
		r.log.Errorw("encoding joined payload", "error", err)
		return
	}
	client.send <- joined

	r.notice(fmt.Sprintf("%s joined the room.", client.Username))
	r.rosterList()
}

func (r *Room) handleUnregister(client *Client) {
	if _, ok := r.clients[client.ID]; !ok {
		return
	}
	delete(r.clients, client.ID)
	close(client.send)
	r.Roster.Release(client.Username)

	r.log.Infow("player left room", "room", r.ID, "username", client.Username, "conn_id", client.ID)

	r.notice(fmt.Sprintf("%s left the room.", client.Username))
	r.rosterList()
}

// notice broadcasts a server line to everyone in the room.
func (r *Room) notice(text string) {
	msg, err := protocol.EncodeMessage(protocol.MsgNotice, protocol.NoticePayload{
		Text:      text,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		r.log.Errorw("encoding notice", "error", err)
		return
	}
	r.fanOut(msg)
}

// rosterList broadcasts the current member list to everyone in the room.
func (r *Room) rosterList() {
	msg, err := protocol.EncodeMessage(protocol.MsgRosterList, protocol.RosterListPayload{
		Members: r.Roster.Names(),
	})
	if err != nil {
		r.log.Errorw("encoding roster list", "error", err)
		return
	}
	r.fanOut(msg)
}

// fanOut delivers a message to every client, dropping clients whose
// send buffer is full. Eviction closes the connection, not the send
// channel: the channel is closed only by handleUnregister, once the
// client's read pump has exited and can no longer queue replies.
func (r *Room) fanOut(message []byte) {
	for _, client := range r.clients {
		select {
		case client.send <- message:
		default:
			delete(r.clients, client.ID)
			r.Roster.Release(client.Username)
			client.conn.Close()
		}
	}
}

// RoomManager manages all chat rooms
type RoomManager struct {
	rooms       map[string]*Room
	replayLines int
	backlogSize int
	log         *zap.SugaredLogger
	mu          sync.RWMutex
}

// NewRoomManager creates a new room manager
func NewRoomManager(replayLines, backlogSize int, log *zap.SugaredLogger) *RoomManager {
	return &RoomManager{
		rooms:       make(map[string]*Room),
		replayLines: replayLines,
		backlogSize: backlogSize,
		log:         log,
	}
}

// GetOrCreateRoom gets an existing room or creates a new one
func (rm *RoomManager) GetOrCreateRoom(roomID string) *Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if room, ok := rm.rooms[roomID]; ok {
		return room
	}

	if roomID == "" {
		roomID = uuid.New().String()
	}

	room := NewRoom(roomID, rm.replayLines, rm.backlogSize, rm.log)
	rm.rooms[roomID] = room

	go room.Run()

	rm.log.Infow("created room", "room", roomID)
	return room
}

// GetRoom gets an existing room
func (rm *RoomManager) GetRoom(roomID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[roomID]
}
