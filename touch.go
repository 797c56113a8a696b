package swiperefresh

import "github.com/agiangrant/swiperefresh/gesture"

// ============================================================================
// Touch Path
// ============================================================================

// swipeBlocked is the gate in front of both touch entry points. The checks
// short-circuit in order, so a disabled layout never asks the content.
func (l *Layout) swipeBlocked() bool {
	return !l.enabled ||
		l.returningToStart ||
		l.CanChildScrollUp() ||
		l.refreshing ||
		l.nested.inProgress
}

// beginTouch runs the steps shared by both entry points and reports whether
// the event may be handled.
func (l *Layout) beginTouch(ev *gesture.MotionEvent) bool {
	if l.content == nil {
		return false
	}
	if l.returningToStart && ev.Action == gesture.ActionDown {
		l.returningToStart = false
	}
	if l.swipeBlocked() {
		return false
	}
	if err := ev.Validate(); err != nil {
		l.reject(err.Error())
		return false
	}
	return true
}

// InterceptTouchEvent watches a touch sequence headed for the content and
// reports whether the layout should take it over.
func (l *Layout) InterceptTouchEvent(ev *gesture.MotionEvent) bool {
	if !l.beginTouch(ev) {
		return false
	}

	switch ev.Action {
	case gesture.ActionDown:
		l.applyOffset(l.geom.OriginalOffset - l.ind.Top())
		l.tracker.PointerDown(ev.PointerID(0), ev.Y(0))

	case gesture.ActionMove:
		if l.tracker.Active() == gesture.InvalidPointer {
			l.reject("move without an active pointer")
			return false
		}
		i := ev.FindPointerIndex(l.tracker.Active())
		if i < 0 {
			return false
		}
		l.tracker.PointerMove(ev.Y(i))

	case gesture.ActionPointerUp:
		l.tracker.SecondaryPointerUp(ev.ActionIndex, ev.PointerIDs())

	case gesture.ActionUp, gesture.ActionCancel:
		l.tracker.PointerUpOrCancel()
	}

	return l.tracker.Dragging()
}

// TouchEvent handles a touch sequence the layout owns. It returns false
// when the layout is not interested in the rest of the sequence.
func (l *Layout) TouchEvent(ev *gesture.MotionEvent) bool {
	if !l.beginTouch(ev) {
		return false
	}

	switch ev.Action {
	case gesture.ActionDown:
		l.tracker.ResetPointer(ev.PointerID(0))

	case gesture.ActionMove:
		i := ev.FindPointerIndex(l.tracker.Active())
		if i < 0 {
			l.reject("move with an invalid active pointer")
			return false
		}
		y := ev.Y(i)
		if l.tracker.PointerMove(y) {
			overscroll := (y - l.tracker.InitialMotionY()) * l.dragRate
			if overscroll <= 0 {
				return false
			}
			if l.parent != nil {
				l.parent.RequestDisallowInterceptTouchEvent(true)
			}
			l.moveSpinner(overscroll)
		}

	case gesture.ActionPointerDown:
		l.tracker.SetActive(ev.PointerID(ev.ActionIndex))

	case gesture.ActionPointerUp:
		l.tracker.SecondaryPointerUp(ev.ActionIndex, ev.PointerIDs())

	case gesture.ActionUp:
		i := ev.FindPointerIndex(l.tracker.Active())
		if i < 0 {
			l.reject("up without an active pointer")
			l.tracker.PointerUpOrCancel()
			return false
		}
		if l.tracker.Dragging() {
			overscroll := (ev.Y(i) - l.tracker.InitialMotionY()) * l.dragRate
			l.tracker.PointerUpOrCancel()
			l.finishSpinner(overscroll, sourceGesture)
		}
		l.tracker.PointerUpOrCancel()
		return false

	case gesture.ActionCancel:
		if l.tracker.Dragging() {
			l.tracker.PointerUpOrCancel()
			l.finishSpinner(0, sourceGesture)
		}
		l.tracker.PointerUpOrCancel()
		return false
	}

	return true
}

// ============================================================================
// Dispatch
// ============================================================================

// DispatchTouchEvent routes one event of a sequence the way a container
// does: the layout gets a chance to intercept every event headed for the
// content, and once it intercepts the content receives a cancel and the
// layout owns the rest of the sequence. Content that implements
// TouchHandler is offered the events first; otherwise the layout handles
// them itself.
func (l *Layout) DispatchTouchEvent(ev *gesture.MotionEvent) bool {
	if ev.Action == gesture.ActionDown {
		l.dispatch = dispatchNone
		l.disallowIntercept = false
	}

	handled := false
	switch l.dispatch {
	case dispatchNone:
		handled = l.dispatchDown(ev)
	case dispatchChild:
		handled = l.dispatchToChild(ev)
	case dispatchSelf:
		handled = l.TouchEvent(ev)
	}

	if ev.Action == gesture.ActionUp || ev.Action == gesture.ActionCancel {
		l.dispatch = dispatchNone
	}
	return handled
}

func (l *Layout) dispatchDown(ev *gesture.MotionEvent) bool {
	if ev.Action != gesture.ActionDown {
		return false
	}
	if !l.disallowIntercept && l.InterceptTouchEvent(ev) {
		l.dispatch = dispatchSelf
		return l.TouchEvent(ev)
	}
	if th, ok := l.content.(TouchHandler); ok && th.TouchEvent(ev) {
		l.dispatch = dispatchChild
		return true
	}
	if l.TouchEvent(ev) {
		l.dispatch = dispatchSelf
		return true
	}
	l.dispatch = dispatchDropped
	return false
}

func (l *Layout) dispatchToChild(ev *gesture.MotionEvent) bool {
	th, _ := l.content.(TouchHandler)
	if !l.disallowIntercept && l.InterceptTouchEvent(ev) {
		if th != nil {
			cancel := gesture.NewMotionEvent(gesture.ActionCancel, 0, ev.Pointers...)
			th.TouchEvent(cancel)
			cancel.Release()
		}
		l.dispatch = dispatchSelf
		return true
	}
	if th == nil {
		return false
	}
	return th.TouchEvent(ev)
}

// ============================================================================
// Single Pointer Helpers
// ============================================================================

func (l *Layout) dispatchSingle(action gesture.Action, y float64) error {
	if l.content == nil {
		return ErrNotReady
	}
	ev := gesture.Single(action, 0, y)
	defer ev.Release()
	l.DispatchTouchEvent(ev)
	return nil
}

// BeginDrag starts a single pointer touch sequence at y.
func (l *Layout) BeginDrag(y float64) error {
	return l.dispatchSingle(gesture.ActionDown, y)
}

// Drag moves the single pointer to y.
func (l *Layout) Drag(y float64) error {
	return l.dispatchSingle(gesture.ActionMove, y)
}

// EndDrag lifts the single pointer at y.
func (l *Layout) EndDrag(y float64) error {
	return l.dispatchSingle(gesture.ActionUp, y)
}

// CancelDrag aborts the single pointer sequence.
func (l *Layout) CancelDrag() error {
	return l.dispatchSingle(gesture.ActionCancel, 0)
}
