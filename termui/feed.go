package termui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// Feed is the scrollable content under the layout.
type Feed struct {
	vp    viewport.Model
	items []string
}

// NewFeed creates a feed showing items top to bottom.
func NewFeed(items []string) *Feed {
	f := &Feed{
		vp:    viewport.New(0, 0),
		items: append([]string(nil), items...),
	}
	f.vp.MouseWheelEnabled = false
	f.render()
	return f
}

// SetSize resizes the visible area.
func (f *Feed) SetSize(width, height int) {
	f.vp.Width = width
	f.vp.Height = height
	f.render()
}

// CanScrollUp reports whether the feed is scrolled away from its first item.
func (f *Feed) CanScrollUp() bool {
	return !f.vp.AtTop()
}

// NestedScrollingEnabled makes wheel overscroll reach the layout.
func (f *Feed) NestedScrollingEnabled() bool {
	return true
}

// ScrollUp scrolls up to n rows and returns how many it moved.
func (f *Feed) ScrollUp(n int) int {
	before := f.vp.YOffset
	f.vp.ScrollUp(n)
	return before - f.vp.YOffset
}

// ScrollDown scrolls down to n rows and returns how many it moved.
func (f *Feed) ScrollDown(n int) int {
	before := f.vp.YOffset
	f.vp.ScrollDown(n)
	return f.vp.YOffset - before
}

// Prepend adds items above the current first item.
func (f *Feed) Prepend(items ...string) {
	f.items = append(append([]string(nil), items...), f.items...)
	f.render()
}

// Items returns the feed contents.
func (f *Feed) Items() []string {
	return f.items
}

// View renders the visible rows.
func (f *Feed) View() string {
	return f.vp.View()
}

func (f *Feed) render() {
	var b strings.Builder
	for i, item := range f.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(item)
	}
	f.vp.SetContent(b.String())
}
