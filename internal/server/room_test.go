package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vantage-game/vantage/internal/protocol"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	room := NewRoom("arena", 10, 20, zap.NewNop().Sugar())
	go room.Run()
	return room
}

func newTestClient(id, username string) *Client {
	return &Client{
		ID:       id,
		Username: username,
		send:     make(chan []byte, 16),
	}
}

// recv waits for the next message queued for the client.
func recv(t *testing.T, c *Client) *protocol.Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		msg, err := protocol.DecodeMessage(data)
		require.NoError(t, err)
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func joinRoom(t *testing.T, room *Room, c *Client) {
	t.Helper()
	require.NoError(t, room.Roster.Claim(c.Username, c))
	c.Room = room
	room.register <- c
}

func TestRoomRegisterSendsJoined(t *testing.T) {
	room := newTestRoom(t)
	ada := newTestClient("c1", "ada")

	joinRoom(t, room, ada)

	msg := recv(t, ada)
	require.Equal(t, protocol.MsgJoined, msg.Type)

	var payload protocol.JoinedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	require.Equal(t, "c1", payload.ConnID)
	require.Equal(t, "arena", payload.RoomID)
	require.Equal(t, []string{"ada"}, payload.Members)
	require.Empty(t, payload.Recent)
}

func TestRoomRegisterReplaysBacklog(t *testing.T) {
	room := newTestRoom(t)
	room.Backlog.Record(protocol.ChatLinePayload{ConnID: "c0", Username: "bel", Text: "earlier", Timestamp: 1})
	room.Backlog.Record(protocol.ChatLinePayload{ConnID: "c0", Username: "bel", Text: "later", Timestamp: 2})

	ada := newTestClient("c1", "ada")
	joinRoom(t, room, ada)

	msg := recv(t, ada)
	require.Equal(t, protocol.MsgJoined, msg.Type)

	var payload protocol.JoinedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	require.Len(t, payload.Recent, 2)
	require.Equal(t, "earlier", payload.Recent[0].Text)
	require.Equal(t, "later", payload.Recent[1].Text)
}

func TestRoomJoinNoticeReachesEveryone(t *testing.T) {
	room := newTestRoom(t)
	ada := newTestClient("c1", "ada")
	joinRoom(t, room, ada)
	recv(t, ada) // joined
	recv(t, ada) // own join notice
	recv(t, ada) // roster

	bel := newTestClient("c2", "bel")
	joinRoom(t, room, bel)

	msg := recv(t, ada)
	require.Equal(t, protocol.MsgNotice, msg.Type)

	var payload protocol.NoticePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	require.Equal(t, "bel joined the room.", payload.Text)
}

func TestRoomBroadcastsRosterOnJoinAndLeave(t *testing.T) {
	room := newTestRoom(t)
	ada := newTestClient("c1", "ada")
	joinRoom(t, room, ada)
	recv(t, ada) // joined
	recv(t, ada) // own join notice

	msg := recv(t, ada)
	require.Equal(t, protocol.MsgRosterList, msg.Type)

	var roster protocol.RosterListPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &roster))
	require.Equal(t, []string{"ada"}, roster.Members)

	bel := newTestClient("c2", "bel")
	joinRoom(t, room, bel)
	recv(t, ada) // bel's join notice

	msg = recv(t, ada)
	require.Equal(t, protocol.MsgRosterList, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &roster))
	require.Equal(t, []string{"ada", "bel"}, roster.Members)

	room.unregister <- bel
	recv(t, ada) // leave notice

	msg = recv(t, ada)
	require.Equal(t, protocol.MsgRosterList, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &roster))
	require.Equal(t, []string{"ada"}, roster.Members)
}

func TestRoomBroadcastReachesAllClients(t *testing.T) {
	room := newTestRoom(t)
	ada := newTestClient("c1", "ada")
	bel := newTestClient("c2", "bel")
	joinRoom(t, room, ada)
	recv(t, ada) // joined
	recv(t, ada) // notice
	recv(t, ada) // roster
	joinRoom(t, room, bel)
	recv(t, ada) // bel's join notice
	recv(t, ada) // roster
	recv(t, bel) // joined
	recv(t, bel) // notice
	recv(t, bel) // roster

	delivered, err := protocol.EncodeMessage(protocol.MsgChatLine, protocol.ChatLinePayload{
		ConnID: "c1", Username: "ada", Text: "hello", Timestamp: 3,
	})
	require.NoError(t, err)
	room.broadcast <- delivered

	for _, c := range []*Client{ada, bel} {
		msg := recv(t, c)
		require.Equal(t, protocol.MsgChatLine, msg.Type)

		var payload protocol.ChatLinePayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		require.Equal(t, "hello", payload.Text)
	}
}

func TestRoomUnregisterNotifiesOthersAndFreesName(t *testing.T) {
	room := newTestRoom(t)
	ada := newTestClient("c1", "ada")
	bel := newTestClient("c2", "bel")
	joinRoom(t, room, ada)
	recv(t, ada)
	recv(t, ada)
	recv(t, ada)
	joinRoom(t, room, bel)
	recv(t, ada)
	recv(t, ada)
	recv(t, bel)
	recv(t, bel)
	recv(t, bel)

	room.unregister <- bel

	msg := recv(t, ada)
	require.Equal(t, protocol.MsgNotice, msg.Type)

	var payload protocol.NoticePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	require.Equal(t, "bel left the room.", payload.Text)

	// The name is free again once the leave notice is out.
	require.Eventually(t, func() bool {
		return room.Roster.Claim("bel", newTestClient("c3", "bel")) == nil
	}, time.Second, 10*time.Millisecond)
}

func TestRoomManagerReusesRooms(t *testing.T) {
	rm := NewRoomManager(10, 20, zap.NewNop().Sugar())

	first := rm.GetOrCreateRoom("arena")
	second := rm.GetOrCreateRoom("arena")
	require.Same(t, first, second)

	other := rm.GetOrCreateRoom("tavern")
	require.NotSame(t, first, other)
	require.Equal(t, first, rm.GetRoom("arena"))
}

func TestRoomManagerGeneratesIDWhenEmpty(t *testing.T) {
	rm := NewRoomManager(10, 20, zap.NewNop().Sugar())

	room := rm.GetOrCreateRoom("")
	require.NotEmpty(t, room.ID)
}
