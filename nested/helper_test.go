package nested

import "testing"

type recordingParent struct {
	accept   bool
	started  int
	accepted int
	stopped  int

	preConsume Delta
	consumeY   int
	moveBy     *Delta // simulates the parent moving the child in the window
}

func (p *recordingParent) StartNestedScroll(axes Axes, typ Type) bool {
	p.started++
	return p.accept && axes.Has(AxisVertical)
}

func (p *recordingParent) NestedScrollAccepted(Axes, Type) { p.accepted++ }

func (p *recordingParent) NestedPreScroll(dx, dy int, consumed *Delta, typ Type) {
	consumed.X += p.preConsume.X
	consumed.Y += p.preConsume.Y
	if p.moveBy != nil {
		p.moveBy.Y -= p.preConsume.Y
	}
}

func (p *recordingParent) NestedScroll(dxC, dyC, dxU, dyU int, typ Type, consumed *Delta) {
	consumed.Y += p.consumeY
}

func (p *recordingParent) StopNestedScroll(Type) { p.stopped++ }

func (p *recordingParent) NestedPreFling(vx, vy float64) bool { return vy > 0 }

func (p *recordingParent) NestedFling(vx, vy float64, consumed bool) bool { return !consumed }

func TestChildHelperPicksNearestAcceptingParent(t *testing.T) {
	near := &recordingParent{}
	far := &recordingParent{accept: true}
	h := NewChildHelper(func() []Parent { return []Parent{near, far} }, nil)

	if !h.Start(AxisVertical, TypeTouch) {
		t.Fatal("Start returned false")
	}
	if near.started != 1 || near.accepted != 0 {
		t.Errorf("near: started=%d accepted=%d", near.started, near.accepted)
	}
	if far.accepted != 1 {
		t.Errorf("far accepted = %d, want 1", far.accepted)
	}

	// A second Start reuses the open session.
	h.Start(AxisVertical, TypeTouch)
	if far.started != 1 {
		t.Errorf("far started = %d, want 1", far.started)
	}

	h.Stop(TypeTouch)
	h.Stop(TypeTouch)
	if far.stopped != 1 {
		t.Errorf("far stopped = %d, want 1", far.stopped)
	}
	if h.HasParent(TypeTouch) {
		t.Error("session still open after Stop")
	}
}

func TestChildHelperRejectsHorizontal(t *testing.T) {
	p := &recordingParent{accept: true}
	h := NewChildHelper(func() []Parent { return []Parent{p} }, nil)
	if h.Start(AxisHorizontal, TypeTouch) {
		t.Error("horizontal session accepted")
	}
}

func TestChildHelperDispatchPreScroll(t *testing.T) {
	var window Delta
	p := &recordingParent{accept: true, preConsume: Delta{Y: 4}, moveBy: &window}
	h := NewChildHelper(func() []Parent { return []Parent{p} }, func() Delta { return window })

	var consumed, offset Delta
	if h.DispatchPreScroll(0, 10, &consumed, &offset, TypeTouch) {
		t.Fatal("dispatched without a session")
	}

	h.Start(AxisVertical, TypeTouch)
	if !h.DispatchPreScroll(0, 10, &consumed, &offset, TypeTouch) {
		t.Fatal("expected parent to consume")
	}
	if consumed.Y != 4 {
		t.Errorf("consumed.Y = %d, want 4", consumed.Y)
	}
	if offset.Y != -4 {
		t.Errorf("offset.Y = %d, want -4", offset.Y)
	}

	if h.DispatchPreScroll(0, 0, &consumed, &offset, TypeTouch) {
		t.Error("zero pre-scroll reported consumption")
	}
	if !offset.IsZero() {
		t.Errorf("offset = %+v, want zero", offset)
	}
}

func TestChildHelperDispatchScrollAccumulates(t *testing.T) {
	p := &recordingParent{accept: true, consumeY: -3}
	h := NewChildHelper(func() []Parent { return []Parent{p} }, nil)
	h.Start(AxisVertical, TypeTouch)

	consumed := Delta{Y: -2}
	if !h.DispatchScroll(0, 0, 0, -10, nil, TypeTouch, &consumed) {
		t.Fatal("scroll not dispatched")
	}
	if consumed.Y != -5 {
		t.Errorf("consumed.Y = %d, want -5", consumed.Y)
	}
}

func TestChildHelperDisabled(t *testing.T) {
	p := &recordingParent{accept: true}
	h := NewChildHelper(func() []Parent { return []Parent{p} }, nil)
	h.Start(AxisVertical, TypeTouch)
	h.SetEnabled(false)

	if p.stopped != 1 {
		t.Errorf("disable did not stop the session")
	}
	if h.Start(AxisVertical, TypeTouch) {
		t.Error("disabled helper started a session")
	}
	if h.DispatchPreFling(0, 100) {
		t.Error("disabled helper dispatched a fling")
	}
}

func TestParentHelperAxes(t *testing.T) {
	var h ParentHelper
	h.Accepted(AxisVertical, TypeTouch)
	h.Accepted(AxisHorizontal, TypeNonTouch)
	if h.Axes() != AxisVertical|AxisHorizontal {
		t.Errorf("Axes = %v", h.Axes())
	}
	h.Stopped(TypeNonTouch)
	if h.Axes() != AxisVertical {
		t.Errorf("Axes after stop = %v", h.Axes())
	}
}
