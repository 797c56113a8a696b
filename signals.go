package swiperefresh

import (
	"time"

	"github.com/zoobzio/capitan"
)

// Refresh lifecycle signals.
var (
	// RefreshTriggered is emitted when a released drag or nested scroll
	// crosses the trigger distance.
	RefreshTriggered = capitan.NewSignal(
		"swiperefresh.refresh.triggered",
		"Pull released past the trigger distance",
	)

	// RefreshStarted is emitted when refreshing turns on.
	RefreshStarted = capitan.NewSignal(
		"swiperefresh.refresh.started",
		"Refresh started",
	)

	// RefreshSettled is emitted when the indicator reaches its refreshing
	// position.
	RefreshSettled = capitan.NewSignal(
		"swiperefresh.refresh.settled",
		"Indicator settled at the end offset",
	)

	// RefreshStopped is emitted when refreshing turns off.
	RefreshStopped = capitan.NewSignal(
		"swiperefresh.refresh.stopped",
		"Refresh stopped",
	)
)

// Presentation signals.
var (
	// PhaseChanged is emitted when an animation phase starts or the layout
	// returns to rest.
	PhaseChanged = capitan.NewSignal(
		"swiperefresh.phase.changed",
		"Animation phase transition",
	)

	// LayoutReset is emitted when the indicator is hidden and returned to
	// its original offset.
	LayoutReset = capitan.NewSignal(
		"swiperefresh.layout.reset",
		"Indicator reset to rest",
	)

	// GestureRejected is emitted when a malformed touch sequence is dropped.
	GestureRejected = capitan.NewSignal(
		"swiperefresh.gesture.rejected",
		"Malformed touch sequence dropped",
	)
)

func (l *Layout) emitStarted(source string) {
	capitan.Emit(l.ctx, RefreshStarted,
		KeyLayoutID.Field(l.id),
		KeySource.Field(source),
		KeyOffset.Field(l.geom.CurrentOffset),
	)
}

func (l *Layout) emitTriggered(source string) {
	capitan.Emit(l.ctx, RefreshTriggered,
		KeyLayoutID.Field(l.id),
		KeySource.Field(source),
		KeyOffset.Field(l.geom.CurrentOffset),
	)
}

func (l *Layout) emitSettled() {
	capitan.Emit(l.ctx, RefreshSettled,
		KeyLayoutID.Field(l.id),
		KeyOffset.Field(l.geom.CurrentOffset),
	)
}

func (l *Layout) emitStopped(source string) {
	capitan.Emit(l.ctx, RefreshStopped,
		KeyLayoutID.Field(l.id),
		KeySource.Field(source),
	)
}

func (l *Layout) emitPhase(old, p Phase, d time.Duration) {
	capitan.Emit(l.ctx, PhaseChanged,
		KeyLayoutID.Field(l.id),
		KeyOldPhase.Field(old.String()),
		KeyNewPhase.Field(p.String()),
		KeyDuration.Field(d),
	)
}

func (l *Layout) emitReset() {
	capitan.Emit(l.ctx, LayoutReset,
		KeyLayoutID.Field(l.id),
		KeyOffset.Field(l.geom.CurrentOffset),
	)
}

// reject logs and reports a dropped touch sequence.
func (l *Layout) reject(reason string) {
	l.logger.Printf("gesture rejected: %s", reason)
	capitan.Emit(l.ctx, GestureRejected,
		KeyLayoutID.Field(l.id),
		KeyReason.Field(reason),
	)
}
