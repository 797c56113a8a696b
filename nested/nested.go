// Package nested implements the nested scrolling handshake between a
// scrollable descendant and the chain of containers above it.
//
// A session starts when a child calls ChildHelper.Start; the nearest ancestor
// whose StartNestedScroll returns true becomes the session parent and sees
// every pre-scroll, scroll and fling the child dispatches until Stop. A
// container that is itself inside a scrolling chain plays both roles: it
// implements Parent toward its descendant and owns a ChildHelper toward its
// own ancestors.
package nested

// Axes is a bit set of scroll axes.
type Axes uint8

const (
	AxisNone       Axes = 0
	AxisHorizontal Axes = 1 << 0
	AxisVertical   Axes = 1 << 1
)

// Has reports whether every axis in o is set in a.
func (a Axes) Has(o Axes) bool {
	return a&o == o && o != AxisNone
}

// Type distinguishes scroll driven by a finger from scroll driven by a fling.
type Type uint8

const (
	TypeTouch Type = iota
	TypeNonTouch
)

func (t Type) String() string {
	if t == TypeTouch {
		return "touch"
	}
	return "non-touch"
}

// Delta is a pair of pixel distances. It doubles as the out-parameter for
// consumed distances and window offsets.
type Delta struct {
	X, Y int
}

// IsZero reports whether both components are zero.
func (d Delta) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// Parent is implemented by containers that take part in nested scrolling on
// behalf of a descendant.
type Parent interface {
	// StartNestedScroll is offered a session; returning true accepts it.
	StartNestedScroll(axes Axes, typ Type) bool

	// NestedScrollAccepted follows a true StartNestedScroll.
	NestedScrollAccepted(axes Axes, typ Type)

	// NestedPreScroll runs before the child scrolls by dy. The parent adds
	// what it consumes to consumed.
	NestedPreScroll(dx, dy int, consumed *Delta, typ Type)

	// NestedScroll reports what the child consumed and left over. The parent
	// adds what it consumes of the leftover to consumed.
	NestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, typ Type, consumed *Delta)

	// StopNestedScroll ends the session.
	StopNestedScroll(typ Type)

	NestedPreFling(vx, vy float64) bool
	NestedFling(vx, vy float64, consumed bool) bool
}

// Scrollable is implemented by views that can opt out of nested scrolling.
// Views that do not implement it are treated as not taking part.
type Scrollable interface {
	NestedScrollingEnabled() bool
}

// Enabled reports whether v takes part in nested scrolling.
func Enabled(v any) bool {
	s, ok := v.(Scrollable)
	return ok && s.NestedScrollingEnabled()
}
