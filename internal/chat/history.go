// Package chat holds the text models behind the client's chat panel: the
// recall history of submitted lines and the display transcript. Both are
// owned by the UI event loop and are not safe for concurrent use.
package chat

// DefaultHistorySize is how many submitted lines the recall history keeps
// when no explicit capacity is configured.
const DefaultHistorySize = 20

// notRecalling is the cursor value when no recall walk is in progress.
const notRecalling = -1

// History remembers the lines a player has submitted so they can be
// recalled into the input field with up/down. Entries are kept newest
// first and the oldest entry is evicted once the capacity is reached.
//
// A cursor tracks the recall walk. It points at the entry currently
// shown in the input field, or at nothing when the player is typing a
// fresh line. Lines are stored exactly as submitted; whether a line is
// worth storing at all is the caller's decision.
type History struct {
	entries  []string
	capacity int
	cursor   int
}

// NewHistory returns an empty history holding at most capacity entries.
// A non-positive capacity falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
		cursor:   notRecalling,
	}
}

// Submit records a line the player has just sent. The line becomes the
// newest entry, the oldest entry is dropped if the buffer is full, and
// any recall walk in progress is abandoned.
func (h *History) Submit(line string) {
	h.entries = append([]string{line}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
	h.cursor = notRecalling
}

// RecallOlder steps the cursor one entry further into the past and
// returns that entry. The first step lands on the newest entry. It
// returns false, leaving the cursor alone, when the history is empty or
// the cursor already sits on the oldest entry.
func (h *History) RecallOlder() (string, bool) {
	next := h.cursor + 1
	if next >= len(h.entries) {
		return "", false
	}
	h.cursor = next
	return h.entries[next], true
}

// RecallNewer steps the cursor one entry back toward the present.
// Stepping past the newest entry ends the walk and returns the empty
// string with ok=true: the input field should be cleared. When no walk
// is in progress it returns false and the input field is left alone.
func (h *History) RecallNewer() (string, bool) {
	switch {
	case h.cursor == notRecalling:
		return "", false
	case h.cursor == 0:
		h.cursor = notRecalling
		return "", true
	default:
		h.cursor--
		return h.entries[h.cursor], true
	}
}

// ResetCursor abandons the recall walk without touching the entries.
func (h *History) ResetCursor() {
	h.cursor = notRecalling
}

// IsRecalling reports whether a recall walk is in progress.
func (h *History) IsRecalling() bool {
	return h.cursor != notRecalling
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the stored lines, newest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
