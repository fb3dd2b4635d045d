// Package command implements the ":" command palette.
package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tempinbox/internal/theme"
)

// Names of the commands the palette accepts.
const (
	CmdRefresh = "refresh"
	CmdNew     = "new"
	CmdCopy    = "copy"
	CmdWhoami  = "whoami"
	CmdQuit    = "quit"
)

// Names lists every command in display order.
var Names = []string{CmdRefresh, CmdNew, CmdCopy, CmdWhoami, CmdQuit}

var aliases = map[string]string{
	"r":        CmdRefresh,
	"sync":     CmdRefresh,
	"n":        CmdNew,
	"regen":    CmdNew,
	"y":        CmdCopy,
	"me":       CmdWhoami,
	"q":        CmdQuit,
	"exit":     CmdQuit,
	CmdRefresh: CmdRefresh,
	CmdNew:     CmdNew,
	CmdCopy:    CmdCopy,
	CmdWhoami:  CmdWhoami,
	CmdQuit:    CmdQuit,
}

// CommandMsg is emitted when the user executes a command. Unknown input
// is passed through unchanged so the parent can report it.
type CommandMsg string

// CancelMsg is emitted when the palette is dismissed with esc.
type CancelMsg struct{}

// Resolve maps user input to a command name. ok is false for unknown input.
func Resolve(input string) (string, bool) {
	name, ok := aliases[strings.ToLower(strings.TrimSpace(input))]
	return name, ok
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// CmdNew creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "refresh, new, copy, whoami, quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd == "" {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			if name, ok := Resolve(cmd); ok {
				cmd = name
			}
			return m, func() tea.Msg { return CommandMsg(cmd) }

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Command Palette"),
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}
