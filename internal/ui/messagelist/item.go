package messagelist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/tempinbox/internal/model"
	"github.com/nhle/tempinbox/internal/theme"
)

// Placeholder texts shown in the single row of an empty inbox.
const (
	FreshPlaceholder = "New inbox ready. Waiting for messages..."
	EmptyPlaceholder = "Your inbox is empty. Waiting..."
)

const senderWidth = 32

// MessageItem wraps a model.MessageSummary so it can be used in a
// bubbles/list.
type MessageItem struct {
	Summary model.MessageSummary
}

// FilterValue returns the string used for fuzzy filtering.
func (i MessageItem) FilterValue() string {
	return i.Summary.SenderAddress + " " + i.Summary.Subject
}

// PlaceholderItem is the lone row of an empty inbox. It cannot be opened.
type PlaceholderItem struct {
	Text string
}

// FilterValue returns an empty string; placeholders never match a filter.
func (PlaceholderItem) FilterValue() string { return "" }

// ItemDelegate implements list.ItemDelegate for message rows.
type ItemDelegate struct {
	// now is overridable so rendering can be tested.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single row: sender, subject, received time.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch it := item.(type) {
	case PlaceholderItem:
		fmt.Fprint(w, theme.PlaceholderStyle.Render("📥 "+it.Text))

	case MessageItem:
		fmt.Fprint(w, d.renderRow(it.Summary, index == m.Index(), m.Width()))
	}
}

func (d ItemDelegate) renderRow(s model.MessageSummary, selected bool, width int) string {
	marker := "●"
	if s.Seen {
		marker = " "
	}

	sender := lipgloss.NewStyle().
		Bold(!s.Seen).
		Width(senderWidth).
		Render(truncate(s.SenderAddress, senderWidth))
	when := theme.MutedStyle.Render(d.relativeTime(s.ReceivedAt))

	subject := s.Subject
	// marker, gaps and row padding take 8 cells.
	if avail := width - senderWidth - lipgloss.Width(when) - 8; avail > 0 {
		subject = truncate(subject, avail)
	}
	line := fmt.Sprintf("%s %s  %s  %s", marker, sender, subject, when)

	if selected {
		return theme.SelectedRowStyle.Render(line)
	}
	return theme.RowStyle.Render(line)
}

// relativeTime returns a human-friendly relative time string.
func (d ItemDelegate) relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if d.now != nil {
		now = d.now()
	}
	if now.Sub(t) < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
