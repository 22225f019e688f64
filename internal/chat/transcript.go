package chat

import (
	"strings"
	"time"
)

// DefaultScrollback is how many transcript lines are kept when no limit
// is configured.
const DefaultScrollback = 500

// ClearedText is what the transcript shows after it has been cleared.
const ClearedText = "Cleared output window."

// timestampFormat is the prefix applied to lines when timestamps are on.
const timestampFormat = "[15:04:05] "

// Line is one displayed transcript line. ConnID is the connection the
// line originated from, or empty for server notices and local text.
type Line struct {
	Text   string
	ConnID string
}

// Transcript is the text shown in the chat output area. Lines are kept
// oldest first and the oldest line is dropped once the scrollback limit
// is reached. When timestamps are enabled each line is prefixed with
// the wall-clock time it was appended, so the prefix survives exports.
type Transcript struct {
	lines      []Line
	limit      int
	timestamps bool

	// Clock supplies the append time. Tests swap it for a fixed clock.
	Clock func() time.Time
}

// NewTranscript returns an empty transcript keeping at most limit lines.
// A non-positive limit falls back to DefaultScrollback.
func NewTranscript(limit int, timestamps bool) *Transcript {
	if limit <= 0 {
		limit = DefaultScrollback
	}
	return &Transcript{
		lines:      make([]Line, 0, 64),
		limit:      limit,
		timestamps: timestamps,
		Clock:      time.Now,
	}
}

// Append adds one line stamped with the current time.
func (t *Transcript) Append(text, connID string) {
	t.AppendAt(t.Clock(), text, connID)
}

// AppendAt adds one line stamped with an explicit time. Replayed
// backlog lines use this so they keep their original send time.
func (t *Transcript) AppendAt(at time.Time, text, connID string) {
	if t.timestamps {
		text = at.Format(timestampFormat) + text
	}
	t.lines = append(t.lines, Line{Text: text, ConnID: connID})
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

// Clear empties the transcript, leaving only a marker line.
func (t *Transcript) Clear() {
	t.SetText(ClearedText)
}

// SetText replaces the whole transcript with the given text, one
// transcript line per newline-separated line. No timestamps are added.
func (t *Transcript) SetText(text string) {
	t.lines = t.lines[:0]
	for _, ln := range strings.Split(text, "\n") {
		t.lines = append(t.lines, Line{Text: ln})
	}
}

// Lines returns a copy of the displayed lines, oldest first.
func (t *Transcript) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len returns the number of displayed lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Contents returns the transcript as plain text, one line per row.
// This is what gets written when the transcript is exported.
func (t *Transcript) Contents() string {
	var b strings.Builder
	for i, ln := range t.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ln.Text)
	}
	return b.String()
}
