package connection

import "sync"

// Session tracks what the server has told us about our connection. It
// is written by the read pump and read from the UI loop.
type Session struct {
	mu      sync.RWMutex
	connID  string
	roomID  string
	members []string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// setJoined records the server's join confirmation.
func (s *Session) setJoined(connID, roomID string, members []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connID = connID
	s.roomID = roomID
	s.members = append([]string(nil), members...)
}

// setMembers replaces the known member list.
func (s *Session) setMembers(members []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append([]string(nil), members...)
}

// ConnID returns the server-assigned connection id, or empty before a
// join has been confirmed.
func (s *Session) ConnID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connID
}

// RoomID returns the joined room, or empty before a join.
func (s *Session) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomID
}

// Members returns a copy of the last known member list.
func (s *Session) Members() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.members...)
}
