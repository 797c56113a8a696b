// Package termui hosts a swiperefresh layout in a Bubble Tea program: a
// scrolling feed of items that can be pulled down with the mouse to load
// more.
package termui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agiangrant/swiperefresh"
)

var spinnerFrames = []string{"◜", "◝", "◞", "◟"}

// Indicator draws the progress circle as a single styled glyph.
type Indicator struct {
	*swiperefresh.BaseIndicator

	diameter int
	settling bool
	settles  int
}

// NewIndicator creates a hidden indicator for a layout whose circle is
// diameter pixels.
func NewIndicator(diameter int) *Indicator {
	return &Indicator{
		BaseIndicator: swiperefresh.NewBaseIndicator(0),
		diameter:      diameter,
	}
}

func (i *Indicator) OnStartSettleAnimation() {
	i.settling = true
}

func (i *Indicator) OnEndSettleAnimation() {
	i.settling = false
	i.settles++
}

// Glyph returns what the indicator looks like right now, or "" when it
// cannot be seen.
func (i *Indicator) Glyph() string {
	if !i.Visible() {
		return ""
	}
	s, _ := i.Scale()
	switch {
	case s <= 0:
		return ""
	case s < 0.34:
		return "·"
	case s < 0.67:
		return "•"
	}

	deg := int(i.Rotation()) % 360
	if deg < 0 {
		deg += 360
	}
	return spinnerFrames[deg/90]
}

// Row returns the terminal row the circle's center falls on, given how many
// pixels make up a row. ok is false above the first row.
func (i *Indicator) Row(pixelsPerRow int) (row int, ok bool) {
	center := i.Top() + i.diameter/2
	if center < 0 || pixelsPerRow <= 0 {
		return 0, false
	}
	return center / pixelsPerRow, true
}

// Render styles the glyph. An empty string means nothing to draw.
func (i *Indicator) Render() string {
	glyph := i.Glyph()
	if glyph == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#F8F8F2"))
	if c := i.BackgroundColor(); c != "" {
		style = style.Background(lipgloss.Color(c))
	}
	if i.BackgroundAlpha() < swiperefresh.MaxAlpha {
		style = style.Faint(true)
	}
	if i.settling {
		style = style.Bold(true).Foreground(lipgloss.Color("#50FA7B"))
	}
	return style.Render(glyph)
}
