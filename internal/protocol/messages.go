// Package protocol defines the WebSocket message types and payloads
// exchanged between the chat client and the relay server.
package protocol

import "encoding/json"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Client -> Server
	MsgJoin  MessageType = "join"  // claim a username and enter a room
	MsgChat  MessageType = "chat"  // submit one chat line
	MsgLeave MessageType = "leave" // leave the current room

	// Server -> Client
	MsgJoined     MessageType = "joined"      // join accepted, carries the backlog replay
	MsgChatLine   MessageType = "chat_line"   // one delivered chat line
	MsgNotice     MessageType = "notice"      // server notice (joins, leaves, announcements)
	MsgRosterList MessageType = "roster_list" // current room members
	MsgError      MessageType = "error"
)

// Message is the wrapper for all WebSocket messages
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is sent when a player wants to enter a room.
type JoinPayload struct {
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
}

// JoinedPayload confirms a join. Recent carries the room's backlog,
// oldest first, so the client can seed its transcript.
type JoinedPayload struct {
	ConnID  string            `json:"conn_id"`
	RoomID  string            `json:"room_id"`
	Members []string          `json:"members"`
	Recent  []ChatLinePayload `json:"recent"`
}

// ChatPayload is one chat line as submitted by a client.
type ChatPayload struct {
	Text string `json:"text"`
}

// ChatLinePayload is one chat line as delivered by the server. The
// timestamp is server time in Unix seconds.
type ChatLinePayload struct {
	ConnID    string `json:"conn_id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// NoticePayload is a server-originated line shown in the transcript.
type NoticePayload struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// RosterListPayload carries the usernames currently in the room.
type RosterListPayload struct {
	Members []string `json:"members"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Message string `json:"message"`
}

// EncodeMessage encodes a message with its payload
func EncodeMessage(msgType MessageType, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}

	return json.Marshal(msg)
}

// DecodeMessage decodes a message
func DecodeMessage(data []byte) (*Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
