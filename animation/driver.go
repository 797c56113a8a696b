package animation

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Driver ticks a registry from its clock at a fixed frame interval for hosts
// that do not have a frame loop of their own.
type Driver struct {
	registry *Registry
	interval time.Duration
}

// NewDriver creates a driver for r. A non-positive interval uses
// DefaultFrameInterval.
func NewDriver(r *Registry, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Driver{registry: r, interval: interval}
}

// Interval returns the frame interval.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Run ticks the registry once per frame on the calling goroutine. After each
// tick frame is called (if non-nil); returning false stops the loop.
// Run returns ctx.Err() when the context ends first.
func (d *Driver) Run(ctx context.Context, frame func(now time.Time) bool) error {
	timer := d.registry.clock.NewTimer(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-timer.C():
			d.registry.Tick(now)
			if frame != nil && !frame(now) {
				return nil
			}
			timer.Reset(d.interval)
		}
	}
}

// FakeClock is a clock that can be moved forward by hand.
// clockz.NewFakeClock satisfies it.
type FakeClock interface {
	clockz.Clock
	Advance(d time.Duration)
}

// Step advances clock by interval and ticks r, frames times.
func Step(clock FakeClock, r *Registry, interval time.Duration, frames int) {
	for i := 0; i < frames; i++ {
		clock.Advance(interval)
		r.Tick(clock.Now())
	}
}

// StepUntilSettled steps frame by frame until r holds no finite animations
// or maxFrames is reached. It returns the number of frames stepped.
func StepUntilSettled(clock FakeClock, r *Registry, interval time.Duration, maxFrames int) int {
	n := 0
	for n < maxFrames && r.HasFinite() {
		clock.Advance(interval)
		r.Tick(clock.Now())
		n++
	}
	return n
}
