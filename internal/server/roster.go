package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrNameTaken is returned when a join claims a username already in use.
var ErrNameTaken = errors.New("username already taken")

// ErrNameEmpty is returned when a join claims a blank username.
var ErrNameEmpty = errors.New("username must not be empty")

// Roster tracks which usernames are in use in a room. Claims happen on
// client read pumps while the room loop reads the member list, so the
// map is mutex-guarded.
type Roster struct {
	mu     sync.RWMutex
	byName map[string]*Client
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		byName: make(map[string]*Client),
	}
}

// Claim reserves username for client. Names are trimmed before the
// uniqueness check.
func (r *Roster) Claim(username string, client *Client) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrNameEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[username]; exists {
		return ErrNameTaken
	}
	r.byName[username] = client
	return nil
}

// Release frees a username. Releasing an unclaimed name is a no-op.
func (r *Roster) Release(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byName, username)
}

// Names returns the claimed usernames in sorted order.
func (r *Roster) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of claimed usernames.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
