package nested

// Locator returns a view's position in window coordinates. Dispatches use it
// to report how far the view was moved by the parents that consumed scroll.
type Locator func() Delta

// ============================================================================
// Child side
// ============================================================================

// ChildHelper tracks the session parent for each scroll type and dispatches
// child-side calls to it.
type ChildHelper struct {
	enabled   bool
	ancestors func() []Parent
	locate    Locator
	parents   [2]Parent
}

// NewChildHelper creates an enabled helper. ancestors lists candidate parents
// nearest first and is consulted on every Start. locate may be nil.
func NewChildHelper(ancestors func() []Parent, locate Locator) *ChildHelper {
	return &ChildHelper{
		enabled:   true,
		ancestors: ancestors,
		locate:    locate,
	}
}

// SetEnabled turns dispatching on or off. Disabling stops any session.
func (h *ChildHelper) SetEnabled(enabled bool) {
	if h.enabled && !enabled {
		h.Stop(TypeTouch)
		h.Stop(TypeNonTouch)
	}
	h.enabled = enabled
}

// Enabled reports whether the helper dispatches.
func (h *ChildHelper) Enabled() bool {
	return h.enabled
}

// HasParent reports whether a session of typ is open.
func (h *ChildHelper) HasParent(typ Type) bool {
	return h.parent(typ) != nil
}

func (h *ChildHelper) parent(typ Type) Parent {
	if int(typ) >= len(h.parents) {
		return nil
	}
	return h.parents[typ]
}

// Start opens a session of typ with the nearest accepting ancestor. It
// returns true when a session is already open.
func (h *ChildHelper) Start(axes Axes, typ Type) bool {
	if h.HasParent(typ) {
		return true
	}
	if !h.enabled || h.ancestors == nil || int(typ) >= len(h.parents) {
		return false
	}
	for _, p := range h.ancestors() {
		if p == nil {
			continue
		}
		if p.StartNestedScroll(axes, typ) {
			h.parents[typ] = p
			p.NestedScrollAccepted(axes, typ)
			return true
		}
	}
	return false
}

// Stop closes the session of typ, if any.
func (h *ChildHelper) Stop(typ Type) {
	p := h.parent(typ)
	if p == nil {
		return
	}
	p.StopNestedScroll(typ)
	h.parents[typ] = nil
}

func (h *ChildHelper) location() Delta {
	if h.locate == nil {
		return Delta{}
	}
	return h.locate()
}

// DispatchPreScroll offers dx, dy to the session parent before the caller
// scrolls. consumed is overwritten with what the parent took; offset, when
// non-nil, receives how far the caller moved in the window. It returns true
// when the parent consumed anything.
func (h *ChildHelper) DispatchPreScroll(dx, dy int, consumed, offset *Delta, typ Type) bool {
	p := h.parent(typ)
	if !h.enabled || p == nil {
		return false
	}
	if dx == 0 && dy == 0 {
		if offset != nil {
			*offset = Delta{}
		}
		return false
	}

	start := h.location()
	var scratch Delta
	if consumed == nil {
		consumed = &scratch
	}
	*consumed = Delta{}
	p.NestedPreScroll(dx, dy, consumed, typ)

	if offset != nil {
		end := h.location()
		*offset = Delta{X: end.X - start.X, Y: end.Y - start.Y}
	}
	return !consumed.IsZero()
}

// DispatchScroll reports a scroll step to the session parent. What the
// parent consumes is added to consumed (which may be nil). It returns true
// when the step was dispatched.
func (h *ChildHelper) DispatchScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed int, offset *Delta, typ Type, consumed *Delta) bool {
	p := h.parent(typ)
	if !h.enabled || p == nil {
		return false
	}
	if dxConsumed == 0 && dyConsumed == 0 && dxUnconsumed == 0 && dyUnconsumed == 0 {
		if offset != nil {
			*offset = Delta{}
		}
		return false
	}

	start := h.location()
	var scratch Delta
	if consumed == nil {
		consumed = &scratch
	}
	p.NestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed, typ, consumed)

	if offset != nil {
		end := h.location()
		*offset = Delta{X: end.X - start.X, Y: end.Y - start.Y}
	}
	return true
}

// DispatchPreFling offers a fling to the touch session parent.
func (h *ChildHelper) DispatchPreFling(vx, vy float64) bool {
	p := h.parent(TypeTouch)
	if !h.enabled || p == nil {
		return false
	}
	return p.NestedPreFling(vx, vy)
}

// DispatchFling reports a fling to the touch session parent.
func (h *ChildHelper) DispatchFling(vx, vy float64, consumed bool) bool {
	p := h.parent(TypeTouch)
	if !h.enabled || p == nil {
		return false
	}
	return p.NestedFling(vx, vy, consumed)
}

// ============================================================================
// Parent side
// ============================================================================

// ParentHelper records the axes of accepted sessions.
type ParentHelper struct {
	touch    Axes
	nonTouch Axes
}

// Accepted records a session of typ on axes.
func (h *ParentHelper) Accepted(axes Axes, typ Type) {
	if typ == TypeNonTouch {
		h.nonTouch = axes
		return
	}
	h.touch = axes
}

// Stopped clears the session of typ.
func (h *ParentHelper) Stopped(typ Type) {
	if typ == TypeNonTouch {
		h.nonTouch = AxisNone
		return
	}
	h.touch = AxisNone
}

// Axes returns the union of axes over open sessions.
func (h *ParentHelper) Axes() Axes {
	return h.touch | h.nonTouch
}
