package event

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultRelaySize is the buffer used by NewRelay when size <= 0.
const DefaultRelaySize = 64

// Relay buffers events produced off the UI goroutine and hands them to
// the Bubble Tea runtime one at a time through Wait.
type Relay struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

// NewRelay creates a relay with the given buffer size.
func NewRelay(size int) *Relay {
	if size <= 0 {
		size = DefaultRelaySize
	}
	return &Relay{
		ch:   make(chan tea.Msg, size),
		done: make(chan struct{}),
	}
}

// Send enqueues msg. List refreshes and fetch failures are dropped when
// the buffer is full since the next poll supersedes them. Every other
// event blocks until there is room or the relay is closed.
func (r *Relay) Send(msg tea.Msg) {
	if Droppable(msg) {
		select {
		case r.ch <- msg:
		case <-r.done:
		default:
		}
		return
	}

	select {
	case r.ch <- msg:
	case <-r.done:
	}
}

// Droppable reports whether msg may be discarded under backpressure.
func Droppable(msg tea.Msg) bool {
	switch msg.(type) {
	case ListReplacedMsg, FetchFailedMsg:
		return true
	}
	return false
}

// Wait returns a tea.Cmd that blocks until the next event. The model must
// call Wait again after handling each relayed event to keep listening.
func (r *Relay) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-r.ch:
			return msg
		case <-r.done:
			return nil
		}
	}
}

// Close stops delivery. Pending Wait commands return nil and blocked
// senders give up.
func (r *Relay) Close() {
	r.once.Do(func() { close(r.done) })
}
