package swiperefresh

import (
	"math"

	"github.com/agiangrant/swiperefresh/nested"
)

// ============================================================================
// Nested Scrolling Parent
// ============================================================================

// The layout is a nested scrolling parent of its content and a child of its
// own ancestors. Overscroll the content leaves unconsumed at its top edge
// is collected into the session total and moves the indicator. Only touch
// driven scroll takes part; flings pass straight through.

func (l *Layout) touchOnly(typ nested.Type, op string) bool {
	if typ == nested.TypeTouch {
		return true
	}
	l.logf("nested %s: ignoring %s scroll", op, typ)
	return false
}

// collecting reports whether nested deltas may move the indicator: a session
// is open and the layout is enabled and not refreshing.
func (l *Layout) collecting() bool {
	return l.nested.inProgress && l.enabled && !l.refreshing
}

// StartNestedScroll accepts vertical touch sessions while the layout is
// enabled, idle and not refreshing.
func (l *Layout) StartNestedScroll(axes nested.Axes, typ nested.Type) bool {
	if !l.touchOnly(typ, "start") {
		return false
	}
	return l.enabled && !l.returningToStart && !l.refreshing && axes.Has(nested.AxisVertical)
}

// NestedScrollAccepted opens the session and offers it to the layout's own
// ancestors.
func (l *Layout) NestedScrollAccepted(axes nested.Axes, typ nested.Type) {
	if !l.touchOnly(typ, "accept") {
		return
	}
	l.nestedParent.Accepted(axes, typ)
	l.nestedChild.Start(axes&nested.AxisVertical, nested.TypeTouch)
	l.nested = nestedSession{inProgress: true}
}

// NestedPreScroll gives back collected overscroll before the content
// scrolls down again, then lets the ancestors consume what is left.
func (l *Layout) NestedPreScroll(dx, dy int, consumed *nested.Delta, typ nested.Type) {
	if !l.touchOnly(typ, "pre-scroll") || !l.collecting() {
		return
	}
	var scratch nested.Delta
	if consumed == nil {
		consumed = &scratch
	}

	if dy > 0 && l.nested.totalUnconsumed > 0 {
		if float64(dy) > l.nested.totalUnconsumed {
			consumed.Y += int(l.nested.totalUnconsumed)
			l.nested.totalUnconsumed = 0
		} else {
			l.nested.totalUnconsumed -= float64(dy)
			consumed.Y += dy
		}
		l.moveSpinner(l.nested.totalUnconsumed)
	}

	// A custom start sits over the content; hide it before the content moves.
	if l.geom.UsingCustomStart && dy > 0 && l.nested.totalUnconsumed == 0 && dy-consumed.Y != 0 {
		l.setVisible(false)
	}

	var parentConsumed nested.Delta
	if l.nestedChild.DispatchPreScroll(dx-consumed.X, dy-consumed.Y, &parentConsumed, nil, nested.TypeTouch) {
		consumed.X += parentConsumed.X
		consumed.Y += parentConsumed.Y
	}
}

// NestedScroll hands the leftover to the ancestors first and collects what
// they leave as overscroll. Ancestors that consume without reporting it are
// detected by how far they moved the layout in the window.
func (l *Layout) NestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, typ nested.Type, consumed *nested.Delta) {
	if !l.touchOnly(typ, "scroll") || !l.collecting() {
		return
	}
	var scratch nested.Delta
	if consumed == nil {
		consumed = &scratch
	}

	before := consumed.Y
	l.parentOffset = nested.Delta{}
	l.nestedChild.DispatchScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, &l.parentOffset, nested.TypeTouch, consumed)
	byParents := consumed.Y - before
	afterParents := dyUnconsumed - byParents

	remaining := afterParents
	if afterParents == 0 {
		remaining = dyUnconsumed + l.parentOffset.Y
	}

	if remaining < 0 && !l.CanChildScrollUp() {
		l.nested.totalUnconsumed += math.Abs(float64(remaining))
		l.moveSpinner(l.nested.totalUnconsumed)
		consumed.Y += afterParents
	}
}

// StopNestedScroll closes the session and releases the indicator when any
// overscroll was collected. A session ended by a reset or overtaken by a
// refresh releases nothing.
func (l *Layout) StopNestedScroll(typ nested.Type) {
	if !l.touchOnly(typ, "stop") {
		return
	}
	l.nestedParent.Stopped(typ)
	open := l.collecting()
	total := l.nested.totalUnconsumed
	l.nested = nestedSession{}
	if open && total > 0 {
		l.finishSpinner(total, sourceNested)
	}
	l.nestedChild.Stop(nested.TypeTouch)
}

// NestedPreFling forwards to the ancestors.
func (l *Layout) NestedPreFling(vx, vy float64) bool {
	return l.nestedChild.DispatchPreFling(vx, vy)
}

// NestedFling forwards to the ancestors.
func (l *Layout) NestedFling(vx, vy float64, consumed bool) bool {
	return l.nestedChild.DispatchFling(vx, vy, consumed)
}

// NestedScrollAxes returns the axes of the open sessions.
func (l *Layout) NestedScrollAxes() nested.Axes {
	return l.nestedParent.Axes()
}

// ============================================================================
// Nested Scrolling Child
// ============================================================================

// SetNestedScrollingEnabled turns dispatch to the ancestors on or off.
func (l *Layout) SetNestedScrollingEnabled(enabled bool) {
	l.nestedChild.SetEnabled(enabled)
}

// NestedScrollingEnabled reports whether the layout dispatches to its
// ancestors.
func (l *Layout) NestedScrollingEnabled() bool {
	return l.nestedChild.Enabled()
}
