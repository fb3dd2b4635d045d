// Package event defines the messages the core emits for the terminal UI
// and the relay that carries them into the Bubble Tea runtime.
package event

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tempinbox/internal/model"
)

// Sink receives render events. *tea.Program satisfies it, as does Relay.
type Sink interface {
	Send(msg tea.Msg)
}

// ListReplacedMsg replaces every row of the message list.
type ListReplacedMsg struct {
	Messages []model.MessageSummary
}

// Empty reports whether the list should render the placeholder row.
func (m ListReplacedMsg) Empty() bool {
	return len(m.Messages) == 0
}

// DetailOpenedMsg opens the detail overlay.
type DetailOpenedMsg struct {
	Detail model.MessageDetail
}

// SourceOpenedMsg opens the raw source view.
type SourceOpenedMsg struct {
	Raw model.RawMessage
}

// SessionStatusMsg replaces the address display with a transient status
// (model.StatusGenerating or model.StatusError).
type SessionStatusMsg struct {
	Status string
	Err    error
}

// SessionReadyMsg announces a newly active session. Fresh is true when the
// session was just provisioned rather than restored.
type SessionReadyMsg struct {
	Session model.Session
	Fresh   bool
}

// FetchFailedMsg reports a silent fetch failure. The UI may mark the list
// as stale but must not block or clear it.
type FetchFailedMsg struct {
	Op  string
	Err error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Send(tea.Msg) {}
