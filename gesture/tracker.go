// Package gesture tracks pointer sequences and decides when a touch becomes a
// vertical drag.
package gesture

import "log"

// State is where a touch sequence is in the down/drag lifecycle.
type State uint8

const (
	// StateIdle - no touch sequence in progress.
	StateIdle State = iota

	// StateDown - a pointer is down but has not moved past the slop.
	StateDown

	// StateDragging - the active pointer moved past the slop.
	// Sticky until the sequence ends.
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDown:
		return "down"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Logger is the subset of *log.Logger the tracker reports through.
type Logger interface {
	Printf(format string, args ...any)
}

// Tracker follows the active pointer of one touch sequence and applies the
// slop rule that turns a press into a drag.
type Tracker struct {
	slop   float64
	logger Logger

	state          State
	active         PointerID
	initialDownY   float64
	initialMotionY float64
}

// NewTracker creates a tracker with the given touch slop in pixels.
func NewTracker(slop float64) *Tracker {
	return &Tracker{
		slop:   slop,
		logger: log.Default(),
		active: InvalidPointer,
	}
}

// SetLogger replaces where malformed sequences are reported.
func (t *Tracker) SetLogger(l Logger) {
	if l != nil {
		t.logger = l
	}
}

// SetSlop changes the touch slop for future moves.
func (t *Tracker) SetSlop(slop float64) {
	t.slop = slop
}

// PointerDown starts a sequence with id as the active pointer.
func (t *Tracker) PointerDown(id PointerID, y float64) {
	t.active = id
	t.initialDownY = y
	t.state = StateDown
}

// ResetPointer makes id the active pointer and clears dragging while keeping
// the down position recorded by an earlier PointerDown.
func (t *Tracker) ResetPointer(id PointerID) {
	t.active = id
	t.state = StateDown
}

// SetActive re-targets the sequence to another pointer that went down.
// Dragging state and motion origin are kept.
func (t *Tracker) SetActive(id PointerID) {
	t.active = id
}

// PointerMove feeds the active pointer's y and reports whether the sequence
// is dragging. The first move beyond the slop fixes the motion origin at
// initialDownY + slop.
func (t *Tracker) PointerMove(y float64) bool {
	switch t.state {
	case StateIdle:
		t.logger.Printf("gesture: move without a preceding down")
		return false
	case StateDown:
		if y-t.initialDownY > t.slop {
			t.initialMotionY = t.initialDownY + t.slop
			t.state = StateDragging
		}
	}
	return t.state == StateDragging
}

// SecondaryPointerUp handles a non-final pointer lifting. index is the
// lifted pointer's position in ids. When it was the active pointer the
// pointer at the other of the first two slots takes over.
func (t *Tracker) SecondaryPointerUp(index int, ids []PointerID) {
	if index < 0 || index >= len(ids) {
		t.logger.Printf("gesture: pointer up with invalid action index %d", index)
		return
	}
	if ids[index] != t.active {
		return
	}
	next := 0
	if index == 0 {
		next = 1
	}
	if next >= len(ids) {
		t.logger.Printf("gesture: active pointer %d lifted with no pointer to take over", t.active)
		t.active = InvalidPointer
		return
	}
	t.active = ids[next]
}

// PointerUpOrCancel ends the sequence.
func (t *Tracker) PointerUpOrCancel() {
	t.state = StateIdle
	t.active = InvalidPointer
}

// State returns the sequence state.
func (t *Tracker) State() State {
	return t.state
}

// Active returns the active pointer, or InvalidPointer.
func (t *Tracker) Active() PointerID {
	return t.active
}

// Dragging reports whether the slop has been exceeded in this sequence.
func (t *Tracker) Dragging() bool {
	return t.state == StateDragging
}

// InitialMotionY returns the drag origin, valid once Dragging.
func (t *Tracker) InitialMotionY() float64 {
	return t.initialMotionY
}
