package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestResolve(t *testing.T) {
	cases := map[string]string{
		"refresh": CmdRefresh,
		" sync ":  CmdRefresh,
		"NEW":     CmdNew,
		"y":       CmdCopy,
		"me":      CmdWhoami,
		"q":       CmdQuit,
	}
	for in, want := range cases {
		got, ok := Resolve(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := Resolve("launch")
	assert.False(t, ok)
}

func TestEnter_EmitsResolvedCommand(t *testing.T) {
	m := New(80, 24)
	m.Focus()
	m = typeText(m, "me")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg(CmdWhoami), cmd())
}

func TestEnter_UnknownPassesThrough(t *testing.T) {
	m := New(80, 24)
	m.Focus()
	m = typeText(m, "launch")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg("launch"), cmd())
}

func TestEnter_EmptyCancels(t *testing.T) {
	m := New(80, 24)
	m.Focus()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestEsc_Cancels(t *testing.T) {
	m := New(80, 24)
	m.Focus()
	m = typeText(m, "ne")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
