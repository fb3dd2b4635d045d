package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/ui/command"
)

// bootstrapDoneMsg is sent once the startup session has been restored or
// a provisioning attempt has finished, successfully or not.
type bootstrapDoneMsg struct {
	err error
}

type noticeMsg struct {
	text string
}

type clearNoticeMsg struct {
	seq int
}

type whoamiMsg struct {
	account *mailtm.Account
	err     error
}

func (w whoamiMsg) text() string {
	switch {
	case errors.Is(w.err, errNoSession):
		return "No active session"
	case errors.Is(w.err, mailtm.ErrUnauthorized):
		return "Token rejected. Press n for a new address"
	case w.err != nil:
		return "whoami failed: " + w.err.Error()
	default:
		return fmt.Sprintf("%s (id %s)", w.account.Address, w.account.ID)
	}
}

var errNoSession = errors.New("no active session")

// bootstrap runs the startup restore-or-create. Failures already reach
// the header through the event relay; polling starts either way and is
// a no-op until a session exists.
func (m Model) bootstrap() tea.Cmd {
	sessions := m.opts.Sessions
	log := m.opts.Log
	return func() tea.Msg {
		_, err := sessions.RestoreOrCreate(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("startup session unavailable")
		}
		return bootstrapDoneMsg{err: err}
	}
}

// refresh asks the poller for an immediate fetch. It is independent of
// the timer; overlapping responses are applied in arrival order.
func (m Model) refresh() tea.Cmd {
	p := m.opts.Inbox
	return func() tea.Msg {
		p.FetchMessages(context.Background())
		return nil
	}
}

func (m Model) openMessage(id string) tea.Cmd {
	p := m.opts.Inbox
	return func() tea.Msg {
		p.OpenMessage(context.Background(), id)
		return nil
	}
}

func (m Model) openSource(id string) tea.Cmd {
	p := m.opts.Inbox
	return func() tea.Msg {
		p.OpenSource(context.Background(), id)
		return nil
	}
}

// createSession provisions a new address in the background.
func (m Model) createSession() tea.Cmd {
	sessions := m.opts.Sessions
	return func() tea.Msg {
		// Failures are reported through SessionStatusMsg.
		_, _ = sessions.CreateSession(context.Background())
		return nil
	}
}

// askNewAddress opens the confirmation form. It is ignored while a
// previous request is still generating.
func (m Model) askNewAddress() (tea.Model, tea.Cmd) {
	if m.generating() {
		return m, nil
	}
	// First run with no address needs no confirmation.
	if m.address == "" {
		return m, m.createSession()
	}

	m.confirmNew = new(bool)
	m.confirm = m.buildConfirmForm()
	m.previousView = m.currentView
	m.currentView = ViewConfirm
	return m, m.confirm.Init()
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate a new address?").
				Description(
					fmt.Sprintf("%s and its messages will no longer be shown.", m.address),
				).
				Affirmative("Yes, new address").
				Negative("Cancel").
				Value(m.confirmNew),
		),
	).WithWidth(m.layout.Overlay().Width).WithShowHelp(false)
}

// updateConfirm forwards input to the confirmation form and acts on its
// final state.
func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm == nil {
		m.currentView = ViewList
		return m, nil
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		return m.finishConfirm(*m.confirmNew)
	case huh.StateAborted:
		return m.finishConfirm(false)
	}
	return m, cmd
}

func (m Model) finishConfirm(accepted bool) (tea.Model, tea.Cmd) {
	m.confirm = nil
	m.currentView = ViewList
	if !accepted || m.generating() {
		return m, nil
	}
	return m, m.createSession()
}

// copyAddress writes the current address to the clipboard.
func (m Model) copyAddress() tea.Cmd {
	addr := m.address
	write := m.opts.Clipboard
	log := m.opts.Log
	return func() tea.Msg {
		if addr == "" {
			return noticeMsg{text: "No address yet"}
		}
		if err := write(addr); err != nil {
			log.Warn().Err(err).Msg("clipboard write failed")
			return noticeMsg{text: "Clipboard unavailable"}
		}
		return noticeMsg{text: "Copied!"}
	}
}

// whoami checks the stored token against the API.
func (m Model) whoami() tea.Cmd {
	current := m.opts.Current
	accounts := m.opts.Accounts
	return func() tea.Msg {
		sess, ok := current.Current()
		if !ok {
			return whoamiMsg{err: errNoSession}
		}
		acct, err := accounts.Me(context.Background(), sess.AuthToken)
		return whoamiMsg{account: acct, err: err}
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case command.CmdRefresh:
		return m, m.refresh()
	case command.CmdNew:
		m.currentView = ViewList
		return m.askNewAddress()
	case command.CmdCopy:
		return m, m.copyAddress()
	case command.CmdWhoami:
		return m, m.whoami()
	case command.CmdQuit:
		return m, m.quit()
	default:
		return m, m.setNotice(fmt.Sprintf("Unknown command %q", cmd))
	}
}
