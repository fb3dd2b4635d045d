package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tempinbox/internal/theme"
)

// overlayMargin is the gap kept between an overlay and the content edges.
const overlayMargin = 2

// Rect is a screen region in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// Overlay returns the screen region of a centered overlay drawn on top
// of the content area. Mouse clicks outside it dismiss the overlay.
func (l Layout) Overlay() Rect {
	w := max(l.ContentWidth()-2*overlayMargin, 0)
	h := max(l.ContentHeight()-2*overlayMargin, 0)
	return Rect{
		X:      overlayMargin,
		Y:      l.HeaderHeight + overlayMargin,
		Width:  w,
		Height: h,
	}
}

// RenderHeader renders the top bar with the address on the left and the
// poll status on the right. addrStyle lets callers color transient
// session statuses.
func (l Layout) RenderHeader(address string, addrStyle lipgloss.Style, status string) string {
	addrRendered := addrStyle.Render(address)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(addrRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		addrRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// PlaceOverlay centers an overlay box inside the content area.
func (l Layout) PlaceOverlay(box string) string {
	return lipgloss.Place(
		l.ContentWidth(),
		l.ContentHeight(),
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
