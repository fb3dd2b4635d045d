// Package app holds the root Bubble Tea model: it routes input between
// the inbox views and turns user actions into session and inbox calls.
package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/inbox"
	"github.com/nhle/tempinbox/internal/keys"
	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/model"
	"github.com/nhle/tempinbox/internal/ui"
	"github.com/nhle/tempinbox/internal/ui/command"
	"github.com/nhle/tempinbox/internal/ui/detail"
	helpview "github.com/nhle/tempinbox/internal/ui/help"
	"github.com/nhle/tempinbox/internal/ui/messagelist"
)

// SessionManager restores or provisions the mailbox identity.
// *session.Manager satisfies it.
type SessionManager interface {
	RestoreOrCreate(ctx context.Context) (model.Session, error)
	CreateSession(ctx context.Context) (model.Session, error)
}

// Inbox polls and opens messages. *inbox.Poller satisfies it.
type Inbox interface {
	StartPolling(interval time.Duration)
	Stop()
	FetchMessages(ctx context.Context)
	OpenMessage(ctx context.Context, id string)
	OpenSource(ctx context.Context, id string)
}

// SessionSource exposes the active session. *session.Store satisfies it.
type SessionSource interface {
	Current() (model.Session, bool)
}

// AccountChecker verifies a token against the API. *mailtm.Client
// satisfies it.
type AccountChecker interface {
	Me(ctx context.Context, token string) (*mailtm.Account, error)
}

// Options wires the model to its collaborators.
type Options struct {
	Sessions     SessionManager
	Current      SessionSource
	Inbox        Inbox
	Accounts     AccountChecker
	Relay        *event.Relay
	PollInterval time.Duration
	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
	Log       zerolog.Logger
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewConfirm
)

// noticeTTL is how long a status bar notice stays up.
const noticeTTL = 2 * time.Second

// Model is the root Bubble Tea model.
type Model struct {
	opts Options
	keys *keys.KeyMap

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ready        bool

	list        messagelist.Model
	detail      detail.Model
	helpView    helpview.Model
	commandView command.Model
	confirm     *huh.Form
	confirmNew  *bool
	spinner     spinner.Model

	address   string
	status    string // model.StatusGenerating, model.StatusError or ""
	statusErr error
	stale     bool
	notice    string
	noticeSeq int
}

// New creates the root model.
func New(opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = inbox.DefaultInterval
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	k := keys.DefaultKeyMap()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	layout := ui.NewLayout(80, 24)
	overlay := layout.Overlay()

	return Model{
		opts:        opts,
		keys:        k,
		currentView: ViewList,
		layout:      layout,
		list:        messagelist.New(k, layout.ContentWidth(), layout.ContentHeight()),
		detail:      detail.New(k, overlay.Width, overlay.Height),
		helpView:    helpview.New(k, command.Names, layout.ContentWidth(), layout.ContentHeight()),
		commandView: command.New(layout.ContentWidth(), layout.ContentHeight()),
		spinner:     sp,
	}
}

// Init restores or provisions the session and starts listening for
// events from the core.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(),
		m.bootstrap(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.updateActiveView(msg)

	// Events relayed from the session manager and poller. Each one
	// re-arms the relay.
	case event.SessionStatusMsg:
		return m, tea.Batch(m.onSessionStatus(msg), m.waitForEvent())

	case event.SessionReadyMsg:
		return m, tea.Batch(m.onSessionReady(msg), m.waitForEvent())

	case event.ListReplacedMsg:
		m.stale = false
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, tea.Batch(cmd, m.waitForEvent())

	case event.DetailOpenedMsg:
		m.detail.SetMessage(msg.Detail)
		// A late response must not pull focus away from a prompt or
		// palette the user opened meanwhile.
		if m.currentView == ViewList {
			m.previousView = ViewList
			m.currentView = ViewDetail
		}
		return m, m.waitForEvent()

	case event.SourceOpenedMsg:
		m.detail.SetSource(msg.Raw)
		return m, m.waitForEvent()

	case event.FetchFailedMsg:
		if msg.Op == inbox.OpList {
			m.stale = true
			return m, m.waitForEvent()
		}
		return m, tea.Batch(m.setNotice("Could not load message"), m.waitForEvent())

	case bootstrapDoneMsg:
		m.opts.Inbox.StartPolling(m.opts.PollInterval)
		return m, nil

	case spinner.TickMsg:
		if m.status != model.StatusGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		return m, m.setNotice(msg.text)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case whoamiMsg:
		return m, m.setNotice(msg.text())

	case messagelist.SelectedMessageMsg:
		return m, m.openMessage(msg.ID)

	case detail.SourceRequestMsg:
		return m, m.openSource(msg.ID)

	case detail.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		m.commandView.Blur()
		return m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		m.commandView.Blur()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that are not owned by the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, m.quit(), true
	}

	// Text-entry views own every other key.
	if m.currentView == ViewCommand || m.currentView == ViewConfirm {
		if m.currentView == ViewConfirm && msg.String() == "esc" {
			m.currentView = ViewList
			m.confirm = nil
			return m, nil, true
		}
		return m, nil, false
	}

	switch msg.String() {
	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true
	}

	if m.currentView == ViewHelp && msg.String() == "esc" {
		m.currentView = m.previousView
		return m, nil, true
	}

	if m.currentView != ViewList {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, m.quit(), true
	case "r":
		return m, m.refresh(), true
	case "n":
		next, cmd := m.askNewAddress()
		return next, cmd, true
	case "y":
		return m, m.copyAddress(), true
	}
	return m, nil, false
}

// handleMouse closes the detail overlay on a click outside its bounds
// and forwards wheel events to the active view.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewDetail &&
		msg.Action == tea.MouseActionPress &&
		msg.Button == tea.MouseButtonLeft &&
		!m.layout.Overlay().Contains(msg.X, msg.Y) {
		m.currentView = ViewList
		return m, nil
	}
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewConfirm:
		return m.updateConfirm(msg)
	}

	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	m.ready = true

	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	overlay := m.layout.Overlay()

	m.list.SetSize(w, h)
	m.detail.SetSize(overlay.Width, overlay.Height)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	if m.confirm != nil {
		m.confirm = m.confirm.WithWidth(overlay.Width)
	}
}

func (m *Model) onSessionStatus(msg event.SessionStatusMsg) tea.Cmd {
	m.status = msg.Status
	m.statusErr = msg.Err
	if msg.Status == model.StatusGenerating {
		return m.spinner.Tick
	}
	return nil
}

// onSessionReady shows the new address. A freshly provisioned inbox
// resets to the "ready" placeholder; the manager has already asked the
// poller for its first fetch. A restored one is fetched right away.
func (m *Model) onSessionReady(msg event.SessionReadyMsg) tea.Cmd {
	m.address = msg.Session.Address
	m.status = ""
	m.statusErr = nil
	m.stale = false

	if !msg.Fresh {
		return m.refresh()
	}
	if m.currentView == ViewDetail {
		m.currentView = ViewList
	}
	return m.list.Reset()
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (m Model) waitForEvent() tea.Cmd {
	if m.opts.Relay == nil {
		return nil
	}
	return m.opts.Relay.Wait()
}

func (m Model) quit() tea.Cmd {
	m.opts.Inbox.Stop()
	return tea.Quit
}

// generating reports whether a provisioning run is in flight.
func (m Model) generating() bool {
	return m.status == model.StatusGenerating
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Address returns the address shown in the header, or "".
func (m Model) Address() string {
	return m.address
}

// Notice returns the transient status bar message, or "".
func (m Model) Notice() string {
	return m.notice
}

// Stale reports whether the last poll failed.
func (m Model) Stale() bool {
	return m.stale
}
