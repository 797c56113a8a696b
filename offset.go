package swiperefresh

import "math"

// Geometry is the indicator's vertical layout in pixels.
type Geometry struct {
	// OriginalOffset is the resting, hidden top of the indicator.
	OriginalOffset int

	// CurrentOffset is the indicator top as of the last applied offset.
	CurrentOffset int

	// EndOffset is where the indicator holds while refreshing.
	EndOffset int

	// TotalDragDistance is the overscroll that maps to 100% progress and
	// arms the refresh.
	TotalDragDistance float64

	// CustomSlingshotDistance overrides the derived slingshot distance when
	// positive. DefaultSlingshotDistance means unset.
	CustomSlingshotDistance int

	// UsingCustomStart is set when the start offset was given explicitly
	// rather than derived from the circle diameter.
	UsingCustomStart bool
}

// SlingshotDistance is the span over which overscroll past the trigger
// distance is compressed into tension.
func (g Geometry) SlingshotDistance() int {
	switch {
	case g.CustomSlingshotDistance > 0:
		return g.CustomSlingshotDistance
	case g.UsingCustomStart:
		return g.EndOffset - g.OriginalOffset
	default:
		return g.EndOffset
	}
}

// SettleTarget is where the trigger animation brings the indicator.
func (g Geometry) SettleTarget() int {
	if g.UsingCustomStart {
		return g.EndOffset
	}
	return g.EndOffset - abs(g.OriginalOffset)
}

// RefreshTarget is where a programmatic refresh places the indicator before
// scaling it in.
func (g Geometry) RefreshTarget() int {
	if g.UsingCustomStart {
		return g.EndOffset
	}
	return g.EndOffset + g.OriginalOffset
}

// Offset is the result of mapping an overscroll distance onto the indicator.
type Offset struct {
	// Target is the indicator top the overscroll maps to.
	Target int

	// Progress is the scale used in scale presentation mode.
	Progress float64

	// DragPercent is the overscroll as a fraction of the trigger distance,
	// capped at 1.
	DragPercent float64

	// AdjustedPercent rescales DragPercent so that it starts rising at 40%
	// and reaches 1 at the trigger distance.
	AdjustedPercent float64
}

// ComputeOffset maps an accumulated overscroll distance to an indicator
// position. Up to the trigger distance the indicator follows the drag
// linearly over the slingshot distance; beyond it the extra distance is
// compressed by a parabolic tension curve that saturates at twice the
// slingshot distance. Arithmetic is single precision and the final pixel
// conversion truncates toward zero.
func ComputeOffset(overscrollTop float64, g Geometry) Offset {
	over := float32(overscrollTop)
	total := float32(g.TotalDragDistance)

	var ratio float32
	switch {
	case total > 0:
		ratio = over / total
	case over != 0:
		ratio = 1
	}

	dragPercent := min(1, abs32(ratio))
	adjustedPercent := float32(math.Max(float64(dragPercent)-.4, 0)) * 5 / 3
	extraOS := abs32(over) - total

	slingshot := float32(g.SlingshotDistance())
	var tensionSlingshotPercent float32
	if slingshot > 0 {
		tensionSlingshotPercent = max(0, min(extraOS, slingshot*2)/slingshot)
	}
	quarter := float64(tensionSlingshotPercent / 4)
	tensionPercent := float32(quarter-math.Pow(quarter, 2)) * 2
	extraMove := slingshot * tensionPercent * 2

	return Offset{
		Target:          g.OriginalOffset + int(slingshot*dragPercent+extraMove),
		Progress:        float64(min(1, ratio)),
		DragPercent:     float64(dragPercent),
		AdjustedPercent: float64(adjustedPercent),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
