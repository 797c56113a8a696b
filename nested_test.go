package swiperefresh

import (
	"testing"

	"github.com/agiangrant/swiperefresh/gesture"
	"github.com/agiangrant/swiperefresh/nested"
)

// ancestor is a nested scrolling parent above the layout. It can move the
// layout in the window to mimic parents that consume without reporting.
type ancestor struct {
	pos *nested.Delta

	preConsume    func(dy int) int
	scrollConsume func(dyUnconsumed int) int
	moveBy        func(dyUnconsumed int) int

	accepted, stopped int
	preFlings         int
}

func (a *ancestor) StartNestedScroll(axes nested.Axes, typ nested.Type) bool {
	return axes.Has(nested.AxisVertical)
}

func (a *ancestor) NestedScrollAccepted(nested.Axes, nested.Type) { a.accepted++ }

func (a *ancestor) NestedPreScroll(dx, dy int, consumed *nested.Delta, typ nested.Type) {
	if a.preConsume != nil {
		consumed.Y += a.preConsume(dy)
	}
}

func (a *ancestor) NestedScroll(dxC, dyC, dxU, dyU int, typ nested.Type, consumed *nested.Delta) {
	if a.scrollConsume != nil {
		consumed.Y += a.scrollConsume(dyU)
	}
	if a.moveBy != nil && a.pos != nil {
		a.pos.Y += a.moveBy(dyU)
	}
}

func (a *ancestor) StopNestedScroll(nested.Type) { a.stopped++ }

func (a *ancestor) NestedPreFling(vx, vy float64) bool {
	a.preFlings++
	return true
}

func (a *ancestor) NestedFling(vx, vy float64, consumed bool) bool { return false }

func newNestedHarness(t *testing.T, a *ancestor, opts ...Option) *harness {
	t.Helper()
	if a != nil {
		pos := &nested.Delta{}
		a.pos = pos
		opts = append(opts,
			WithNestedParents(func() []nested.Parent { return []nested.Parent{a} }),
			WithWindowLocator(func() nested.Delta { return *pos }),
		)
	}
	return newHarness(t, &nestedContent{}, opts...)
}

func startSession(t *testing.T, l *Layout) {
	t.Helper()
	if !l.StartNestedScroll(nested.AxisVertical, nested.TypeTouch) {
		t.Fatal("StartNestedScroll() = false")
	}
	l.NestedScrollAccepted(nested.AxisVertical, nested.TypeTouch)
}

func TestStartNestedScroll(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		axes  nested.Axes
		typ   nested.Type
		want  bool
	}{
		{"vertical touch", nil, nested.AxisVertical, nested.TypeTouch, true},
		{"both axes", nil, nested.AxisVertical | nested.AxisHorizontal, nested.TypeTouch, true},
		{"horizontal", nil, nested.AxisHorizontal, nested.TypeTouch, false},
		{"non-touch", nil, nested.AxisVertical, nested.TypeNonTouch, false},
		{"disabled", func(h *harness) { h.l.SetEnabled(false) }, nested.AxisVertical, nested.TypeTouch, false},
		{"refreshing", func(h *harness) { h.l.SetRefreshing(true) }, nested.AxisVertical, nested.TypeTouch, false},
		{"returning", func(h *harness) { h.l.returningToStart = true }, nested.AxisVertical, nested.TypeTouch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNestedHarness(t, nil)
			if tt.setup != nil {
				tt.setup(h)
			}
			if got := h.l.StartNestedScroll(tt.axes, tt.typ); got != tt.want {
				t.Errorf("StartNestedScroll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNonTouchIgnoredAndLogged(t *testing.T) {
	logger := &recordingLogger{}
	h := newNestedHarness(t, nil, WithLogger(logger))
	startSession(t, h.l)

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -40, nested.TypeNonTouch, &consumed)
	if h.l.nested.totalUnconsumed != 0 || !consumed.IsZero() {
		t.Errorf("non-touch scroll collected %v", h.l.nested.totalUnconsumed)
	}
	if !logger.contains("non-touch") {
		t.Errorf("non-touch scroll not logged: %v", logger.lines)
	}
}

func TestNestedOverscrollCollectAndGiveBack(t *testing.T) {
	h := newNestedHarness(t, nil)
	startSession(t, h.l)

	if !h.l.NestedScrollInProgress() {
		t.Fatal("session not open")
	}
	if h.l.NestedScrollAxes() != nested.AxisVertical {
		t.Errorf("NestedScrollAxes() = %v", h.l.NestedScrollAxes())
	}

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -40, nested.TypeTouch, &consumed)
	if consumed.Y != -40 {
		t.Errorf("consumed.Y = %d, want -40", consumed.Y)
	}
	if h.l.nested.totalUnconsumed != 40 {
		t.Fatalf("totalUnconsumed = %v, want 40", h.l.nested.totalUnconsumed)
	}
	if want := ComputeOffset(40, h.l.Geometry()).Target; h.l.CurrentOffset() != want {
		t.Errorf("CurrentOffset() = %d, want %d", h.l.CurrentOffset(), want)
	}

	tests := []struct {
		dy           int
		wantConsumed int
		wantTotal    float64
	}{
		{10, 10, 30},
		{50, 30, 0},
		{20, 0, 0},
		{-5, 0, 0},
	}
	for _, tt := range tests {
		var c nested.Delta
		h.l.NestedPreScroll(0, tt.dy, &c, nested.TypeTouch)
		if c.Y != tt.wantConsumed {
			t.Errorf("pre-scroll %d consumed %d, want %d", tt.dy, c.Y, tt.wantConsumed)
		}
		if h.l.nested.totalUnconsumed != tt.wantTotal {
			t.Errorf("pre-scroll %d left total %v, want %v", tt.dy, h.l.nested.totalUnconsumed, tt.wantTotal)
		}
		if h.l.nested.totalUnconsumed < 0 {
			t.Fatalf("total went negative after pre-scroll %d", tt.dy)
		}
	}
	if h.l.CurrentOffset() != -30 {
		t.Errorf("CurrentOffset() = %d, want -30 after giving back", h.l.CurrentOffset())
	}

	h.l.StopNestedScroll(nested.TypeTouch)
	if h.l.NestedScrollInProgress() {
		t.Error("session still open")
	}
	if h.l.IsRefreshing() {
		t.Error("empty session started a refresh")
	}
}

func TestNestedScrollIgnoredWhenContentScrolls(t *testing.T) {
	h := newNestedHarness(t, nil)
	h.l.SetChildScrollUpFunc(func(*Layout, Content) bool { return true })
	startSession(t, h.l)

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -40, nested.TypeTouch, &consumed)
	if h.l.nested.totalUnconsumed != 0 || !consumed.IsZero() {
		t.Errorf("collected %v while content can scroll", h.l.nested.totalUnconsumed)
	}
}

func TestNestedRefresh(t *testing.T) {
	tests := []struct {
		name          string
		dy            int
		wantRefreshes int
	}{
		{"past trigger", -100, 1},
		{"short", -30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNestedHarness(t, nil)
			startSession(t, h.l)

			var consumed nested.Delta
			h.l.NestedScroll(0, 0, 0, tt.dy, nested.TypeTouch, &consumed)
			h.l.StopNestedScroll(nested.TypeTouch)
			h.settle(t)

			if h.refreshes != tt.wantRefreshes {
				t.Errorf("refreshes = %d, want %d", h.refreshes, tt.wantRefreshes)
			}
			if h.l.nested.totalUnconsumed != 0 {
				t.Errorf("totalUnconsumed = %v after stop", h.l.nested.totalUnconsumed)
			}
		})
	}
}

func TestNestedSessionBlocksTouch(t *testing.T) {
	h := newNestedHarness(t, nil)
	startSession(t, h.l)

	down := gesture.Single(gesture.ActionDown, 0, 0)
	defer down.Release()
	h.l.InterceptTouchEvent(down)
	if h.l.tracker.State() != gesture.StateIdle {
		t.Error("touch path ran during a nested session")
	}
}

func TestCustomStartHiddenBeforeContentScrolls(t *testing.T) {
	h := newNestedHarness(t, nil)
	h.l.SetProgressViewOffset(false, 0, 100)
	startSession(t, h.l)

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -20, nested.TypeTouch, &consumed)
	if !h.ind.Visible() {
		t.Fatal("indicator hidden during overscroll")
	}

	var pre nested.Delta
	h.l.NestedPreScroll(0, 30, &pre, nested.TypeTouch)
	if pre.Y != 20 {
		t.Errorf("pre-scroll consumed %d, want 20", pre.Y)
	}
	if h.ind.Visible() {
		t.Error("custom start indicator left over the scrolling content")
	}
}

func TestNestedDispatchToAncestors(t *testing.T) {
	tests := []struct {
		name      string
		a         *ancestor
		dy        int
		wantTotal float64
		wantC     int
	}{
		{
			name:      "no consumption",
			a:         &ancestor{},
			dy:        -40,
			wantTotal: 40,
			wantC:     -40,
		},
		{
			name:      "ancestor takes half",
			a:         &ancestor{scrollConsume: func(dy int) int { return dy / 2 }},
			dy:        -40,
			wantTotal: 20,
			wantC:     -40,
		},
		{
			name: "ancestor moves the layout",
			a: &ancestor{
				scrollConsume: func(dy int) int { return dy },
				moveBy:        func(dy int) int { return -dy },
			},
			dy:        -40,
			wantTotal: 0,
			wantC:     -40,
		},
		{
			name:      "ancestor consumes silently",
			a:         &ancestor{scrollConsume: func(dy int) int { return dy }},
			dy:        -40,
			wantTotal: 40,
			wantC:     -40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newNestedHarness(t, tt.a)
			startSession(t, h.l)
			if tt.a.accepted != 1 {
				t.Fatalf("ancestor accepted %d sessions, want 1", tt.a.accepted)
			}

			var consumed nested.Delta
			h.l.NestedScroll(0, 0, 0, tt.dy, nested.TypeTouch, &consumed)
			if h.l.nested.totalUnconsumed != tt.wantTotal {
				t.Errorf("totalUnconsumed = %v, want %v", h.l.nested.totalUnconsumed, tt.wantTotal)
			}
			if consumed.Y != tt.wantC {
				t.Errorf("consumed.Y = %d, want %d", consumed.Y, tt.wantC)
			}

			h.l.StopNestedScroll(nested.TypeTouch)
			if tt.a.stopped != 1 {
				t.Errorf("ancestor stopped %d times, want 1", tt.a.stopped)
			}
		})
	}
}

func TestNestedPreScrollLeftoverToAncestor(t *testing.T) {
	a := &ancestor{preConsume: func(dy int) int { return dy }}
	h := newNestedHarness(t, a)
	startSession(t, h.l)

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -10, nested.TypeTouch, &consumed)

	var pre nested.Delta
	h.l.NestedPreScroll(0, 25, &pre, nested.TypeTouch)
	if pre.Y != 25 {
		t.Errorf("pre-scroll consumed %d, want 25 (10 by the layout, 15 by the ancestor)", pre.Y)
	}
}

func TestNestedFlingForwarded(t *testing.T) {
	a := &ancestor{}
	h := newNestedHarness(t, a)
	startSession(t, h.l)

	if !h.l.NestedPreFling(0, 500) {
		t.Error("pre-fling not forwarded")
	}
	if a.preFlings != 1 {
		t.Errorf("preFlings = %d, want 1", a.preFlings)
	}
	if h.l.NestedFling(0, 500, false) {
		t.Error("NestedFling() = true, want the ancestor's false")
	}

	h.l.SetNestedScrollingEnabled(false)
	if h.l.NestedScrollingEnabled() {
		t.Error("nested scrolling still enabled")
	}
	if h.l.NestedPreFling(0, 500) {
		t.Error("pre-fling forwarded while disabled")
	}
}

func TestNestedSessionEndedByDisable(t *testing.T) {
	h := newNestedHarness(t, nil)
	startSession(t, h.l)

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -40, nested.TypeTouch, &consumed)
	h.l.SetEnabled(false)
	rest := h.l.ProgressViewStartOffset()

	// The content still thinks its session is open.
	consumed = nested.Delta{}
	h.l.NestedScroll(0, 0, 0, -200, nested.TypeTouch, &consumed)
	if !consumed.IsZero() {
		t.Errorf("disabled layout consumed %v", consumed)
	}
	var pre nested.Delta
	h.l.NestedPreScroll(0, 30, &pre, nested.TypeTouch)
	if !pre.IsZero() {
		t.Errorf("disabled layout consumed pre-scroll %v", pre)
	}
	if h.ind.Visible() || h.l.CurrentOffset() != rest {
		t.Errorf("indicator moved while disabled: visible %v, top %d", h.ind.Visible(), h.l.CurrentOffset())
	}

	h.l.StopNestedScroll(nested.TypeTouch)
	h.settle(t)
	if h.l.IsRefreshing() || h.refreshes != 0 {
		t.Errorf("disabled layout refreshed: refreshing %v, refreshes %d", h.l.IsRefreshing(), h.refreshes)
	}
}

func TestNestedScrollIgnoredWhileRefreshing(t *testing.T) {
	h := newNestedHarness(t, nil)
	startSession(t, h.l)

	if err := h.l.SetRefreshing(true); err != nil {
		t.Fatal(err)
	}
	h.settle(t)
	settled := h.l.CurrentOffset()

	var consumed nested.Delta
	h.l.NestedScroll(0, 0, 0, -200, nested.TypeTouch, &consumed)
	var pre nested.Delta
	h.l.NestedPreScroll(0, 50, &pre, nested.TypeTouch)
	if h.l.CurrentOffset() != settled {
		t.Errorf("nested scroll moved a refreshing indicator from %d to %d", settled, h.l.CurrentOffset())
	}
	if !consumed.IsZero() || !pre.IsZero() {
		t.Errorf("refreshing layout consumed %v / %v", consumed, pre)
	}

	h.l.StopNestedScroll(nested.TypeTouch)
	h.settle(t)
	if !h.l.IsRefreshing() || h.l.CurrentOffset() != settled {
		t.Errorf("stop disturbed the refresh: refreshing %v, top %d", h.l.IsRefreshing(), h.l.CurrentOffset())
	}
}

func TestNestedNilConsumed(t *testing.T) {
	h := newNestedHarness(t, &ancestor{})
	startSession(t, h.l)

	h.l.NestedScroll(0, 0, 0, -40, nested.TypeTouch, nil)
	if h.l.nested.totalUnconsumed != 40 {
		t.Errorf("totalUnconsumed = %v, want 40", h.l.nested.totalUnconsumed)
	}
	h.l.NestedPreScroll(0, 10, nil, nested.TypeTouch)
	if h.l.nested.totalUnconsumed != 30 {
		t.Errorf("totalUnconsumed = %v, want 30", h.l.nested.totalUnconsumed)
	}
}
