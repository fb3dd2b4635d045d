package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tempinbox/internal/model"
	"github.com/nhle/tempinbox/internal/theme"
)

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerText(), theme.SessionStatusStyle(m.status), m.pollStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// headerText is the address, or the transient status replacing it.
func (m Model) headerText() string {
	switch m.status {
	case model.StatusGenerating:
		return m.spinner.View() + " Generating..."
	case model.StatusError:
		return "API Error. Try again."
	}
	if m.address == "" {
		return "tempinbox"
	}
	return m.address
}

func (m Model) pollStatus() string {
	if m.stale {
		return theme.StaleStyle.Render("⚠ offline, showing last fetch")
	}
	return fmt.Sprintf("polling every %s", m.opts.PollInterval)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.layout.PlaceOverlay(m.detail.View())
	case ViewHelp:
		return m.layout.PlaceOverlay(m.helpView.View())
	case ViewCommand:
		return lipgloss.JoinVertical(lipgloss.Left, m.commandView.View(), m.list.View())
	case ViewConfirm:
		if m.confirm == nil {
			return m.list.View()
		}
		return m.layout.PlaceOverlay(theme.PanelStyle.Render(m.confirm.View()))
	default:
		return m.list.View()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return theme.NoticeStyle.Render(m.notice)
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc cancel"
	case ViewDetail:
		return "esc close | s source | j/k scroll | click outside to close"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		if m.status == model.StatusError {
			return "n retry | q quit | ? help"
		}
		return "enter open | r refresh | n new address | y copy | : command | ? help | q quit"
	}
}
