package connection

// Event represents events from the connection manager
type Event interface {
	isEvent()
}

// ConnectedEvent is sent when connection is established
type ConnectedEvent struct{}

func (ConnectedEvent) isEvent() {}

// DisconnectedEvent is sent when connection is lost
type DisconnectedEvent struct {
	Error error
}

func (DisconnectedEvent) isEvent() {}

// SessionJoinedEvent is sent when the server accepts a join. Recent
// carries the room's backlog, oldest first.
type SessionJoinedEvent struct {
	ConnID  string
	RoomID  string
	Members []string
	Recent  []ChatLine
}

func (SessionJoinedEvent) isEvent() {}

// ChatLineEvent is sent for each delivered chat line.
type ChatLineEvent struct {
	Line ChatLine
}

func (ChatLineEvent) isEvent() {}

// NoticeEvent is sent for server notices (joins, leaves, announcements).
type NoticeEvent struct {
	Text      string
	Timestamp int64
}

func (NoticeEvent) isEvent() {}

// RosterUpdateEvent is sent when the room's member list changes.
type RosterUpdateEvent struct {
	Members []string
}

func (RosterUpdateEvent) isEvent() {}

// ServerErrorEvent is sent when the server reports an error.
type ServerErrorEvent struct {
	Message string
}

func (ServerErrorEvent) isEvent() {}

// ChatLine is one delivered chat line.
type ChatLine struct {
	ConnID    string
	Username  string
	Text      string
	Timestamp int64
}
