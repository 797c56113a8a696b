package swiperefresh

import (
	"math"
	"testing"
)

func referenceGeometry() Geometry {
	return Geometry{
		OriginalOffset:          0,
		EndOffset:               150,
		TotalDragDistance:       100,
		CustomSlingshotDistance: DefaultSlingshotDistance,
	}
}

func TestComputeOffsetPinned(t *testing.T) {
	tests := []struct {
		name       string
		overscroll float64
		want       int
	}{
		{"rest", 0, 0},
		{"half way", 50, 75},
		{"at trigger", 100, 150},
		// dragPercent 1, tension 20/150: extraMove 19.33
		{"past trigger", 120, 169},
		// tension saturates at twice the slingshot distance
		{"saturated", 400, 300},
		{"far past saturation", 1000, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOffset(tt.overscroll, referenceGeometry())
			if got.Target != tt.want {
				t.Errorf("ComputeOffset(%v).Target = %d, want %d", tt.overscroll, got.Target, tt.want)
			}
		})
	}
}

func TestComputeOffsetPercents(t *testing.T) {
	tests := []struct {
		overscroll   float64
		wantDrag     float64
		wantAdjusted float64
		wantProgress float64
	}{
		{0, 0, 0, 0},
		{40, 0.4, 0, 0.4},
		{70, 0.7, 0.5, 0.7},
		{250, 1, 1, 1},
	}

	for _, tt := range tests {
		got := ComputeOffset(tt.overscroll, referenceGeometry())
		if math.Abs(got.DragPercent-tt.wantDrag) > 1e-6 {
			t.Errorf("DragPercent(%v) = %v, want %v", tt.overscroll, got.DragPercent, tt.wantDrag)
		}
		if math.Abs(got.AdjustedPercent-tt.wantAdjusted) > 1e-6 {
			t.Errorf("AdjustedPercent(%v) = %v, want %v", tt.overscroll, got.AdjustedPercent, tt.wantAdjusted)
		}
		if math.Abs(got.Progress-tt.wantProgress) > 1e-6 {
			t.Errorf("Progress(%v) = %v, want %v", tt.overscroll, got.Progress, tt.wantProgress)
		}
	}
}

func TestComputeOffsetMonotonic(t *testing.T) {
	geometries := map[string]Geometry{
		"reference": referenceGeometry(),
		"default start": {
			OriginalOffset:          -30,
			EndOffset:               64,
			TotalDragDistance:       64,
			CustomSlingshotDistance: DefaultSlingshotDistance,
		},
		"custom start": {
			OriginalOffset:          20,
			EndOffset:               120,
			TotalDragDistance:       80,
			CustomSlingshotDistance: DefaultSlingshotDistance,
			UsingCustomStart:        true,
		},
		"custom slingshot": {
			OriginalOffset:          -30,
			EndOffset:               64,
			TotalDragDistance:       64,
			CustomSlingshotDistance: 200,
		},
	}

	for name, g := range geometries {
		t.Run(name, func(t *testing.T) {
			prev := ComputeOffset(0, g).Target
			if prev != g.OriginalOffset {
				t.Fatalf("ComputeOffset(0) = %d, want original %d", prev, g.OriginalOffset)
			}
			for over := 0.5; over <= 600; over += 0.5 {
				got := ComputeOffset(over, g).Target
				if got < prev {
					t.Fatalf("target decreased at %v: %d < %d", over, got, prev)
				}
				if got < g.OriginalOffset {
					t.Fatalf("target %d above original %d at %v", got, g.OriginalOffset, over)
				}
				prev = got
			}
		})
	}
}

func TestSlingshotDistance(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		want int
	}{
		{"derived from end", Geometry{EndOffset: 64, CustomSlingshotDistance: -1}, 64},
		{"custom start", Geometry{OriginalOffset: 10, EndOffset: 64, CustomSlingshotDistance: -1, UsingCustomStart: true}, 54},
		{"custom distance", Geometry{EndOffset: 64, CustomSlingshotDistance: 90, UsingCustomStart: true}, 90},
		{"zero is unset", Geometry{EndOffset: 64}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.SlingshotDistance(); got != tt.want {
				t.Errorf("SlingshotDistance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTargets(t *testing.T) {
	g := Geometry{OriginalOffset: -30, EndOffset: 64}
	if got := g.SettleTarget(); got != 34 {
		t.Errorf("SettleTarget() = %d, want 34", got)
	}
	if got := g.RefreshTarget(); got != 34 {
		t.Errorf("RefreshTarget() = %d, want 34", got)
	}

	g.UsingCustomStart = true
	if got := g.SettleTarget(); got != 64 {
		t.Errorf("custom SettleTarget() = %d, want 64", got)
	}
}
