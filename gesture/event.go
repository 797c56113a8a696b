package gesture

import (
	"errors"
	"fmt"
	"sync"
)

// ============================================================================
// Actions and Pointers
// ============================================================================

// Action identifies what happened in a MotionEvent.
type Action uint8

const (
	// ActionDown - first pointer touched down, starts a touch sequence.
	ActionDown Action = iota + 1

	// ActionMove - one or more pointers moved.
	ActionMove

	// ActionUp - last pointer lifted, ends the sequence.
	ActionUp

	// ActionCancel - the sequence was aborted by the host.
	ActionCancel

	// ActionPointerDown - an additional pointer touched down.
	ActionPointerDown

	// ActionPointerUp - a non-final pointer lifted.
	ActionPointerUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer-down"
	case ActionPointerUp:
		return "pointer-up"
	default:
		return "unknown"
	}
}

// PointerID identifies a pointer for the lifetime of a touch sequence.
type PointerID int

// InvalidPointer means no pointer is being tracked.
const InvalidPointer PointerID = -1

// Pointer is one pointer's position within an event.
type Pointer struct {
	ID   PointerID
	X, Y float64
}

// ============================================================================
// Motion Event
// ============================================================================

// ErrMalformedEvent is returned by Validate for events that cannot be tracked.
var ErrMalformedEvent = errors.New("gesture: malformed motion event")

// MotionEvent is a touch event carrying every pointer currently down.
type MotionEvent struct {
	Action Action

	// ActionIndex is the index into Pointers of the pointer that went down
	// or up for ActionPointerDown / ActionPointerUp.
	ActionIndex int

	Pointers []Pointer
}

// NewMotionEvent creates an event. Uses an object pool since moves arrive
// every frame while a finger is down.
func NewMotionEvent(action Action, actionIndex int, pointers ...Pointer) *MotionEvent {
	e := motionEventPool.Get().(*MotionEvent)
	e.Action = action
	e.ActionIndex = actionIndex
	e.Pointers = append(e.Pointers[:0], pointers...)
	return e
}

// Single creates an event for a single pointer with id 0.
func Single(action Action, x, y float64) *MotionEvent {
	return NewMotionEvent(action, 0, Pointer{ID: 0, X: x, Y: y})
}

// Release returns the event to the pool. Call when done processing.
func (e *MotionEvent) Release() {
	motionEventPool.Put(e)
}

var motionEventPool = sync.Pool{
	New: func() any {
		return &MotionEvent{Pointers: make([]Pointer, 0, 4)}
	},
}

// PointerCount returns the number of pointers in the event.
func (e *MotionEvent) PointerCount() int {
	return len(e.Pointers)
}

// PointerID returns the id of the pointer at index, or InvalidPointer.
func (e *MotionEvent) PointerID(index int) PointerID {
	if index < 0 || index >= len(e.Pointers) {
		return InvalidPointer
	}
	return e.Pointers[index].ID
}

// PointerIDs returns the ids of every pointer in index order.
func (e *MotionEvent) PointerIDs() []PointerID {
	ids := make([]PointerID, len(e.Pointers))
	for i, p := range e.Pointers {
		ids[i] = p.ID
	}
	return ids
}

// FindPointerIndex returns the index of the pointer with id, or -1.
func (e *MotionEvent) FindPointerIndex(id PointerID) int {
	if id == InvalidPointer {
		return -1
	}
	for i, p := range e.Pointers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Y returns the y coordinate of the pointer at index.
func (e *MotionEvent) Y(index int) float64 {
	return e.Pointers[index].Y
}

// Validate reports events with no pointers, duplicate pointer ids, or an
// out of range action index.
func (e *MotionEvent) Validate() error {
	n := e.PointerCount()
	if n == 0 {
		return fmt.Errorf("%w: %s without pointers", ErrMalformedEvent, e.Action)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if e.Pointers[i].ID == e.Pointers[j].ID {
				return fmt.Errorf("%w: duplicate pointer id %d", ErrMalformedEvent, e.Pointers[i].ID)
			}
		}
	}
	if (e.Action == ActionPointerDown || e.Action == ActionPointerUp) &&
		(e.ActionIndex < 0 || e.ActionIndex >= n) {
		return fmt.Errorf("%w: action index %d out of range", ErrMalformedEvent, e.ActionIndex)
	}
	return nil
}
