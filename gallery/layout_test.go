package gallery

import (
	"math"
	"testing"
)

func TestLayoutIsDeterministicAndBounded(t *testing.T) {
	for i := range 200 {
		a := Layout(i, 12)
		b := Layout(i, 12)
		if a != b {
			t.Fatalf("Layout(%d) not deterministic: %v vs %v", i, a, b)
		}
		if math.Abs(a.X) > MaxHorizontalOffset || math.Abs(a.Y) > MaxVerticalOffset {
			t.Errorf("Layout(%d) = %v, outside offset bounds", i, a)
		}
	}
}

func TestLayoutKnownValues(t *testing.T) {
	tests := []struct {
		i    int
		want Offset
	}{
		// i=0: hRadius 0, vRadius 0.8, vAngle pi/3.
		{0, Offset{X: 0, Y: math.Cos(math.Pi/3) * 0.8 * 2}},
		// i=3: hRadius 0, vRadius 0.
		{3, Offset{X: 0, Y: 0}},
		{1, Offset{
			X: math.Sin(2.618) * 1.2 * 8 / 3,
			Y: math.Cos(1.618+math.Pi/3) * 1.6 * 2,
		}},
	}
	for _, tt := range tests {
		got := Layout(tt.i, 12)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("Layout(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestInitialDepthSpreadsEvenly(t *testing.T) {
	for i := range 12 {
		got := InitialDepth(i, 12)
		want := DepthRange / 12 * float64(i)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("InitialDepth(%d, 12) = %v, want %v", i, got, want)
		}
	}
	if got := InitialDepth(3, 0); got != 0 {
		t.Errorf("InitialDepth(3, 0) = %v, want 0", got)
	}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		depth float64
		want  float64
	}{
		{0, 1},
		{DepthRange * 0.075, 1},
		{DepthRange * 0.35, 1},
		{DepthRange * 0.4, 2.0 / 3},
		{DepthRange * 0.425, 0.5},
		{DepthRange * 0.5, 0},
		{DepthRange * 0.52, 0.02 / 0.15},
		{DepthRange * 0.575, 0.5},
		{DepthRange * 0.65, 1},
		{DepthRange * 0.98, 1},
		{DepthRange, 1},
		{-DepthRange * 0.425, 0.5},
	}
	for _, tt := range tests {
		got := Opacity(tt.depth)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Opacity(%v) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestOpacityAlwaysInRange(t *testing.T) {
	for d := -120.0; d < 120; d += 0.37 {
		if o := Opacity(d); o < 0 || o > 1 {
			t.Fatalf("Opacity(%v) = %v, outside [0, 1]", d, o)
		}
	}
}

func TestPlaneScale(t *testing.T) {
	tests := []struct {
		aspect float64
		wx, wy float64
	}{
		{2, 4, 2},
		{1, 2, 2},
		{0.5, 2, 4},
		{0, 2, 2},
		{math.NaN(), 2, 2},
	}
	for _, tt := range tests {
		x, y := PlaneScale(tt.aspect)
		if x != tt.wx || y != tt.wy {
			t.Errorf("PlaneScale(%v) = (%v, %v), want (%v, %v)", tt.aspect, x, y, tt.wx, tt.wy)
		}
	}
}
