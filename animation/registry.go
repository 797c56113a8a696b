// Package animation runs frame-driven tweens against an injectable clock.
//
// Tweens are registered with a Registry and advanced by calling Tick once per
// frame, either from a host's own frame loop or from a Driver. Every update
// and completion callback runs on the goroutine that calls Tick.
package animation

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// ID uniquely identifies an animation.
type ID uint64

var nextID atomic.Uint64

func newID() ID {
	return ID(nextID.Add(1))
}

// ============================================================================
// Animation
// ============================================================================

// Animation is a single registered tween.
type Animation struct {
	id         ID
	startTime  time.Time
	duration   time.Duration
	update     func(progress float64) // Called each frame with eased progress 0-1
	onComplete func()                 // Called when animation finishes
	easing     EasingFunc
	loop       bool // If true, animation repeats until cancelled
	cancelled  atomic.Bool
}

// ID returns the animation's unique identifier.
func (a *Animation) ID() ID {
	return a.id
}

// Cancel stops the animation. Its completion callback will not run.
// Cancelling a finished or already cancelled animation is a no-op.
func (a *Animation) Cancel() {
	if a == nil {
		return
	}
	a.cancelled.Store(true)
}

// IsCancelled returns whether the animation was cancelled.
func (a *Animation) IsCancelled() bool {
	return a.cancelled.Load()
}

// ============================================================================
// Registry
// ============================================================================

// Registry tracks active animations and advances them on Tick.
type Registry struct {
	mu         sync.Mutex
	clock      clockz.Clock
	animations map[ID]*Animation

	// Callback when animation state changes (for a frame loop to know when to idle)
	onActiveChange func(hasActive bool)
}

// NewRegistry creates a registry that stamps animations with clock.
// A nil clock uses the wall clock.
func NewRegistry(clock clockz.Clock) *Registry {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Registry{
		clock:      clock,
		animations: make(map[ID]*Animation),
	}
}

// Clock returns the clock animations are stamped with.
func (r *Registry) Clock() clockz.Clock {
	return r.clock
}

// OnActiveChange sets the callback for when animations become active/inactive.
func (r *Registry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers a new animation.
func (r *Registry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
}

// Remove unregisters an animation without completing it.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	_, ok := r.animations[id]
	delete(r.animations, id)
	isEmpty := len(r.animations) == 0
	callback := r.onActiveChange
	r.mu.Unlock()

	if ok && isEmpty && callback != nil {
		callback(false)
	}
}

// HasActive returns true if there are any registered animations.
func (r *Registry) HasActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.animations) > 0
}

// HasFinite returns true if any registered, uncancelled animation will
// eventually complete on its own.
func (r *Registry) HasFinite() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, anim := range r.animations {
		if !anim.loop && !anim.cancelled.Load() {
			return true
		}
	}
	return false
}

// Count returns the number of registered animations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.animations)
}

// Tick updates all animations and removes completed ones.
// Called once per frame. Returns true if any animations are still active.
func (r *Registry) Tick(now time.Time) bool {
	r.mu.Lock()

	var toRemove []ID
	var toComplete []*Animation

	for id, anim := range r.animations {
		if anim.cancelled.Load() {
			toRemove = append(toRemove, id)
			continue
		}

		elapsed := now.Sub(anim.startTime)

		if elapsed >= anim.duration {
			if anim.loop {
				// Reset for next loop iteration
				anim.startTime = now
				elapsed = 0
			} else {
				toRemove = append(toRemove, id)
				toComplete = append(toComplete, anim)
				// Final update at 100%
				if anim.update != nil {
					anim.update(anim.easing(1.0))
				}
				continue
			}
		}

		t := 1.0
		if anim.duration > 0 {
			t = clamp(float64(elapsed)/float64(anim.duration), 0, 1)
		}
		if anim.update != nil {
			anim.update(anim.easing(t))
		}
	}

	for _, id := range toRemove {
		delete(r.animations, id)
	}

	callback := r.onActiveChange
	r.mu.Unlock()

	// Completion callbacks run outside the lock so they can start new
	// animations. A completion may cancel a sibling that finished in the
	// same frame; the sibling's callback is then skipped.
	for _, anim := range toComplete {
		if anim.onComplete != nil && !anim.cancelled.Load() {
			anim.onComplete()
		}
	}

	r.mu.Lock()
	hasActive := len(r.animations) > 0
	r.mu.Unlock()

	if len(toRemove) > 0 && !hasActive && callback != nil {
		callback(false)
	}

	return hasActive
}
