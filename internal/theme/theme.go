package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top bar holding the inbox address.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// OverlayStyle frames the message detail and raw source overlays.
var OverlayStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// PanelStyle wraps help and command palette content.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedRowStyle highlights the focused message row.
var SelectedRowStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// RowStyle is the base style for unselected rows.
var RowStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// PlaceholderStyle renders the empty-inbox row.
var PlaceholderStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	Foreground(ColorGray).
	Italic(true)

// MutedStyle is used for secondary text such as timestamps.
var MutedStyle = lipgloss.NewStyle().Foreground(ColorGray)

// LabelStyle is used for field labels in the detail overlay.
var LabelStyle = lipgloss.NewStyle().Foreground(ColorGray)

// ValueStyle is used for field values in the detail overlay.
var ValueStyle = lipgloss.NewStyle().Foreground(ColorWhite)

// NoticeStyle is used for transient confirmations like "Copied!".
var NoticeStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

// StaleStyle marks the list as out of date after a failed poll.
var StaleStyle = lipgloss.NewStyle().Foreground(ColorYellow)

// SessionStatusStyle returns the header style for a transient session
// status. Unknown statuses fall back to the header style.
func SessionStatusStyle(status string) lipgloss.Style {
	switch status {
	case "generating":
		return HeaderStyle.Foreground(ColorYellow)
	case "error":
		return HeaderStyle.Foreground(ColorRed)
	default:
		return HeaderStyle
	}
}
