// Package eventtest records emitted events for assertions.
package eventtest

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder is an event.Sink that keeps every message it receives.
type Recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

// Send records msg.
func (r *Recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

// All returns a copy of the recorded messages.
func (r *Recorder) All() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tea.Msg, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Of returns the recorded messages of type T, in order.
func Of[T any](r *Recorder) []T {
	var out []T
	for _, m := range r.All() {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
