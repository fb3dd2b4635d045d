// Package messagelist renders the inbox as a list of rows.
package messagelist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/keys"
	"github.com/nhle/tempinbox/internal/model"
	"github.com/nhle/tempinbox/internal/theme"
)

// SelectedMessageMsg is sent when the user opens a row.
type SelectedMessageMsg struct {
	ID string
}

// Model is the message list view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a message list showing the fresh-inbox placeholder.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New(
		[]list.Item{PlaceholderItem{Text: FreshPlaceholder}},
		ItemDelegate{},
		width,
		height,
	)
	l.Title = "Inbox"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns nil; rows arrive through event.ListReplacedMsg.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case event.ListReplacedMsg:
		return m, m.replace(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			item, ok := m.list.SelectedItem().(MessageItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedMessageMsg{ID: item.Summary.ID}
			}
		}
	}

	// Delegate to list model for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// replace swaps every row. An empty list keeps whichever placeholder is
// already on screen so a fresh inbox keeps its "ready" text.
func (m *Model) replace(msg event.ListReplacedMsg) tea.Cmd {
	if msg.Empty() {
		if m.ShowingPlaceholder() {
			return nil
		}
		return m.list.SetItems([]list.Item{PlaceholderItem{Text: EmptyPlaceholder}})
	}

	items := make([]list.Item, len(msg.Messages))
	for i, s := range msg.Messages {
		items[i] = MessageItem{Summary: s}
	}
	return m.list.SetItems(items)
}

// Reset shows the fresh-inbox placeholder, dropping any rows.
func (m *Model) Reset() tea.Cmd {
	m.list.ResetSelected()
	return m.list.SetItems([]list.Item{PlaceholderItem{Text: FreshPlaceholder}})
}

// ShowingPlaceholder reports whether the list holds only the placeholder row.
func (m Model) ShowingPlaceholder() bool {
	items := m.list.Items()
	if len(items) != 1 {
		return false
	}
	_, ok := items[0].(PlaceholderItem)
	return ok
}

// Messages returns the summaries currently rendered, in order.
func (m Model) Messages() []model.MessageSummary {
	var out []model.MessageSummary
	for _, it := range m.list.Items() {
		if mi, ok := it.(MessageItem); ok {
			out = append(out, mi.Summary)
		}
	}
	return out
}

// Placeholder returns the placeholder text, or "" when rows are shown.
func (m Model) Placeholder() string {
	if !m.ShowingPlaceholder() {
		return ""
	}
	return m.list.Items()[0].(PlaceholderItem).Text
}

// View renders the list view.
func (m Model) View() string {
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
