package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMat4MulIdentity(t *testing.T) {
	m := PlaneModel([3]float32{1, 2, 3}, 4, 5)
	if got := Mat4Identity().Mul(m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
	if got := m.Mul(Mat4Identity()); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
}

func TestPlaneModelTransformsCorners(t *testing.T) {
	m := PlaneModel([3]float32{1, -2, -10}, 4, 3)
	p := m.MulPoint(0.5, 0.5, 0)
	if !approx(p[0], 3) || !approx(p[1], -0.5) || !approx(p[2], -10) || !approx(p[3], 1) {
		t.Errorf("top-right corner = %v", p)
	}
}

func TestLookAtMapsTargetToNegativeZ(t *testing.T) {
	view := LookAt([3]float32{0, 0, 5}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	p := view.MulPoint(0, 0, 0)
	if !approx(p[0], 0) || !approx(p[1], 0) || !approx(p[2], -5) {
		t.Errorf("target in view space = %v, want (0, 0, -5)", p)
	}
	up := view.MulPoint(0, 1, 5)
	if !approx(up[1], 1) {
		t.Errorf("up vector in view space = %v", up)
	}
}

func TestLookAtDegenerateDoesNotProduceNaN(t *testing.T) {
	view := LookAt([3]float32{1, 1, 1}, [3]float32{1, 1, 1}, [3]float32{0, 1, 0})
	for i, v := range view {
		if math.IsNaN(float64(v)) {
			t.Fatalf("element %d is NaN", i)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	near := proj.MulPoint(0, 0, -0.1)
	far := proj.MulPoint(0, 0, -100)
	if !approx(near[2]/near[3], 0) {
		t.Errorf("near plane depth = %v", near[2]/near[3])
	}
	if !approx(far[2]/far[3], 1) {
		t.Errorf("far plane depth = %v", far[2]/far[3])
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]uint32(nil)) != nil {
		t.Error("empty slice should give nil")
	}
	b := SliceToBytes([]uint32{1, 2, 3})
	if len(b) != 12 {
		t.Errorf("len = %d, want 12", len(b))
	}
}
