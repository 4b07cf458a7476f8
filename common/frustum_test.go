package common

import (
	"math"
	"testing"
)

func testFrustum() Frustum {
	view := LookAt([3]float32{0, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0})
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)
	return ExtractFrustum(proj.Mul(view))
}

func TestFrustumContainsSphere(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"ahead", [3]float32{0, 0, -10}, 1, true},
		{"behind camera", [3]float32{0, 0, 10}, 1, false},
		{"between eye and near plane", [3]float32{0, 0, -0.5}, 0.1, false},
		{"straddles near plane", [3]float32{0, 0, -0.5}, 1, true},
		{"beyond far plane", [3]float32{0, 0, -200}, 1, false},
		{"far left", [3]float32{-50, 0, -10}, 1, false},
		{"touching left edge", [3]float32{-10.5, 0, -10}, 1, true},
		{"above", [3]float32{0, 30, -10}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("ContainsSphere(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		if l := length(p.Normal); math.Abs(float64(l)-1) > 1e-4 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
}
