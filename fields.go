package swiperefresh

import "github.com/zoobzio/capitan"

// Field keys for layout events.
var (
	// KeyLayoutID identifies the emitting layout.
	KeyLayoutID = capitan.NewStringKey("layout_id")

	// KeyOldPhase is the phase before a transition.
	KeyOldPhase = capitan.NewStringKey("old_phase")

	// KeyNewPhase is the phase after a transition.
	KeyNewPhase = capitan.NewStringKey("new_phase")

	// KeyOffset is the indicator top in pixels.
	KeyOffset = capitan.NewIntKey("offset")

	// KeySource is what started a refresh: "gesture", "nested" or "api".
	KeySource = capitan.NewStringKey("source")

	// KeyReason describes why a gesture was rejected.
	KeyReason = capitan.NewStringKey("reason")

	// KeyDuration is the duration of the phase that started.
	KeyDuration = capitan.NewDurationKey("duration")
)
