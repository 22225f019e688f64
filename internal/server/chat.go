package server

import (
	"sync"

	"github.com/vantage-game/vantage/internal/protocol"
)

// DefaultBacklogSize is how many chat lines a room retains when no
// limit is configured.
const DefaultBacklogSize = 100

// Backlog stores a room's recent chat lines in a circular buffer so
// late joiners can be caught up. Safe for concurrent use: lines are
// recorded from client read pumps and read by the room loop.
type Backlog struct {
	mu      sync.RWMutex
	lines   []protocol.ChatLinePayload
	maxSize int
	head    int // next write position
	count   int // lines currently stored
}

// NewBacklog creates a backlog retaining at most maxSize lines. A
// non-positive maxSize falls back to DefaultBacklogSize.
func NewBacklog(maxSize int) *Backlog {
	if maxSize <= 0 {
		maxSize = DefaultBacklogSize
	}
	return &Backlog{
		lines:   make([]protocol.ChatLinePayload, maxSize),
		maxSize: maxSize,
	}
}

// Record appends a delivered line, evicting the oldest if full.
func (b *Backlog) Record(line protocol.ChatLinePayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines[b.head] = line
	b.head = (b.head + 1) % b.maxSize
	if b.count < b.maxSize {
		b.count++
	}
}

// Recent returns the last n lines, oldest first, or every stored line
// when n <= 0. The result is a copy.
func (b *Backlog) Recent(n int) []protocol.ChatLinePayload {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > b.count {
		n = b.count
	}
	if n == 0 {
		return nil
	}

	// head is the next write slot, so with a full buffer the oldest
	// line sits at head; otherwise lines start at index 0.
	start := b.count - n
	if b.count == b.maxSize {
		start = (b.head - n + b.maxSize) % b.maxSize
	}

	out := make([]protocol.ChatLinePayload, n)
	for i := 0; i < n; i++ {
		out[i] = b.lines[(start+i)%b.maxSize]
	}
	return out
}

// Len returns the number of stored lines.
func (b *Backlog) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}
