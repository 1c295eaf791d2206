package conversation

import (
	"iter"
	"sync"

	"ecomart-chatbot/internal/model"
)

// History is the ordered log of one conversation. It only grows, except for Clear.
type History struct {
	mu       sync.RWMutex
	messages []model.Message
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds msg to the end of the log.
func (h *History) Append(msg model.Message) error {
	if msg.Role == "" {
		return ErrInvalidMessage
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	return nil
}

// Messages returns a copy of the log in conversation order.
func (h *History) Messages() []model.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]model.Message(nil), h.messages...)
}

// Lines yields "{role}: {content}" for every message in order.
// Each range over the sequence reads a fresh snapshot, so it can be iterated again.
func (h *History) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range h.Messages() {
			if !yield(m.String()) {
				return
			}
		}
	}
}

// Len returns the number of messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Clear empties the log. Clearing an empty history is a no-op.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
