// Package detail renders a single message, or its raw source, inside a
// scrollable overlay.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/tempinbox/internal/keys"
	"github.com/nhle/tempinbox/internal/model"
	"github.com/nhle/tempinbox/internal/theme"
)

// CloseMsg signals the parent to dismiss the overlay.
type CloseMsg struct{}

// SourceRequestMsg asks the parent to load the raw source of a message.
type SourceRequestMsg struct {
	ID string
}

// Mode is what the overlay currently shows.
type Mode int

const (
	ModeMessage Mode = iota
	ModeSource
)

// Model is the message detail overlay.
type Model struct {
	message  *model.MessageDetail
	raw      *model.RawMessage
	mode     Mode
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a detail overlay of the given outer size.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k}
	m.viewport = viewport.New(0, 0)
	m.SetSize(width, height)
	return m
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			// esc from the source view steps back to the message first.
			if m.mode == ModeSource && m.message != nil {
				m.mode = ModeMessage
				m.refresh()
				return m, nil
			}
			return m, func() tea.Msg { return CloseMsg{} }

		case key.Matches(msg, m.keys.Source):
			if m.message != nil && m.mode == ModeMessage {
				id := m.message.ID
				return m, func() tea.Msg { return SourceRequestMsg{ID: id} }
			}
			return m, nil
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetMessage shows d, replacing whatever was on screen.
func (m *Model) SetMessage(d model.MessageDetail) {
	m.message = &d
	m.raw = nil
	m.mode = ModeMessage
	m.refresh()
}

// SetSource shows the raw source. It is ignored unless it belongs to the
// message currently open.
func (m *Model) SetSource(r model.RawMessage) {
	if m.message != nil && m.message.ID != r.ID {
		return
	}
	m.raw = &r
	m.mode = ModeSource
	m.refresh()
}

// Mode returns what the overlay is showing.
func (m Model) Mode() Mode {
	return m.mode
}

// MessageID returns the ID of the open message, or "".
func (m Model) MessageID() string {
	if m.message == nil {
		return ""
	}
	return m.message.ID
}

// Content returns the unstyled text currently loaded in the viewport.
func (m Model) Content() string {
	switch m.mode {
	case ModeSource:
		return m.renderSource()
	default:
		return m.renderMessage()
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.Content())
	m.viewport.GotoTop()
}

// View renders the overlay box at exactly its configured size.
func (m Model) View() string {
	// Width/Height exclude the border.
	return theme.OverlayStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		MaxHeight(m.height).
		Render(m.viewport.View())
}

// renderMessage builds the message view: header fields then body.
func (m Model) renderMessage() string {
	d := m.message
	if d == nil {
		return ""
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(d.Subject))
	sections = append(sections, "")

	sections = append(sections, field("From:", d.SenderAddress))
	if !d.ReceivedAt.IsZero() {
		sections = append(sections, field("Date:",
			d.ReceivedAt.Local().Format("Mon, 02 Jan 2006 15:04:05")))
	}

	sections = append(sections, "", m.separator(), "")

	body := d.BodyContent
	if d.IsHTML {
		body = HTMLToText(body)
	}
	if strings.TrimSpace(body) == "" {
		body = theme.MutedStyle.Italic(true).Render("(empty message)")
	}
	sections = append(sections, lipgloss.NewStyle().Width(m.textWidth()).Render(body))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSource builds the raw view: every header, then a parts summary.
func (m Model) renderSource() string {
	r := m.raw
	if r == nil {
		return ""
	}

	var sections []string
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(
		fmt.Sprintf("Source (%s)", humanize.Bytes(uint64(r.Size))),
	))
	sections = append(sections, "")

	for _, h := range r.Headers {
		sections = append(sections, field(h.Key+":", h.Value))
	}

	sections = append(sections, "", m.separator(), "")

	if r.TextBody != "" {
		sections = append(sections, theme.LabelStyle.Render("text/plain"), r.TextBody, "")
	}
	if r.HTMLBody != "" {
		sections = append(sections, theme.LabelStyle.Render("text/html"), r.HTMLBody, "")
	}

	if len(r.Attachments) > 0 {
		sections = append(sections, theme.LabelStyle.Render(
			fmt.Sprintf("Attachments (%d)", len(r.Attachments)),
		))
		for _, a := range r.Attachments {
			sections = append(sections, fmt.Sprintf(
				"  %s  %s  %s", a.Filename, a.MIMEType, humanize.Bytes(uint64(a.Size)),
			))
		}
	}

	return lipgloss.NewStyle().Width(m.textWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s", theme.LabelStyle.Render(label), theme.ValueStyle.Render(value))
}

func (m Model) separator() string {
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	return sepStyle.Render(strings.Repeat("─", max(min(m.textWidth(), 80), 0)))
}

// textWidth is the usable width inside border and padding.
func (m Model) textWidth() int {
	return max(m.width-2-theme.OverlayStyle.GetHorizontalPadding(), 1)
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = m.textWidth()
	m.viewport.Height = max(height-2-theme.OverlayStyle.GetVerticalPadding(), 1)
	if m.message != nil || m.raw != nil {
		m.viewport.SetContent(m.Content())
	}
}
