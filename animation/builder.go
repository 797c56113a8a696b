package animation

import "time"

// DefaultDuration is used when a Builder is not given a duration.
const DefaultDuration = 300 * time.Millisecond

// Builder provides a fluent API for creating animations.
type Builder struct {
	registry   *Registry
	duration   time.Duration
	easing     EasingFunc
	loop       bool
	onComplete func()
}

// Animate starts building an animation on this registry.
func (r *Registry) Animate() *Builder {
	return &Builder{
		registry: r,
		duration: DefaultDuration,
		easing:   EaseOutCubic,
	}
}

// Duration sets how long the animation runs.
func (b *Builder) Duration(d time.Duration) *Builder {
	b.duration = d
	return b
}

// Easing sets the easing function. A nil easing keeps the current one.
func (b *Builder) Easing(fn EasingFunc) *Builder {
	if fn != nil {
		b.easing = fn
	}
	return b
}

// Loop makes the animation repeat forever until cancelled.
func (b *Builder) Loop() *Builder {
	b.loop = true
	return b
}

// OnComplete sets a callback for when the animation finishes.
// Looping and cancelled animations never complete.
func (b *Builder) OnComplete(fn func()) *Builder {
	b.onComplete = fn
	return b
}

// Custom creates an animation with a custom update function.
// The update function receives eased progress from 0-1.
func (b *Builder) Custom(update func(progress float64)) *Animation {
	anim := &Animation{
		id:         newID(),
		startTime:  b.registry.clock.Now(),
		duration:   b.duration,
		easing:     b.easing,
		loop:       b.loop,
		onComplete: b.onComplete,
		update:     update,
	}

	b.registry.Add(anim)
	return anim
}

// Float animates a float64 value between two points.
func (b *Builder) Float(from, to float64, set func(v float64)) *Animation {
	return b.Custom(func(progress float64) {
		set(Lerp(from, to, progress))
	})
}

// Int animates an integer value between two points. Intermediate values are
// truncated toward zero on the delta, so the tween lands exactly on to.
func (b *Builder) Int(from, to int, set func(v int)) *Animation {
	return b.Custom(func(progress float64) {
		set(from + int(float64(to-from)*progress))
	})
}

// Lerp linearly interpolates between two values.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
