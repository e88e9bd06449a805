package assistant

import "time"

// DefaultHistorySize is the number of turns kept when no capacity is given.
const DefaultHistorySize = 100

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Role   Role      `json:"role"`
	Text   string    `json:"text"`
	Intent Intent    `json:"intent,omitempty"`
	At     time.Time `json:"at"`
}

// History is a fixed-capacity ring of turns. When full, appending evicts
// the oldest turn.
type History struct {
	buf   []Turn
	start int
	n     int
}

// NewHistory creates a ring holding at most capacity turns. A non-positive
// capacity falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{buf: make([]Turn, capacity)}
}

// Append adds a turn, evicting the oldest one if the ring is full.
func (h *History) Append(t Turn) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = t
		h.n++
		return
	}
	h.buf[h.start] = t
	h.start = (h.start + 1) % len(h.buf)
}

// Turns returns the retained turns, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, h.n)
	for i := range h.n {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Len returns the number of retained turns.
func (h *History) Len() int { return h.n }

// Cap returns the ring capacity.
func (h *History) Cap() int { return len(h.buf) }

// Clear drops every turn.
func (h *History) Clear() {
	clear(h.buf)
	h.start, h.n = 0, 0
}
