package camera

import (
	"encoding/binary"
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

// ndc projects a world point through the camera and divides by w.
func ndc(c Camera, x, y, z float32) (float32, float32, float32) {
	p := c.ViewProjectionMatrix().MulPoint(x, y, z)
	return p[0] / p[3], p[1] / p[3], p[2] / p[3]
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Aspect() != 1 {
		t.Errorf("Aspect() = %v, want 1", c.Aspect())
	}
	if c.Target() != [3]float32{0, 0, -1} || c.Eye() != [3]float32{} {
		t.Errorf("eye/target = %v/%v", c.Eye(), c.Target())
	}
	if near, far := c.Clip(); near != 0.1 || far != 100 {
		t.Errorf("Clip() = %v, %v", near, far)
	}
}

func TestPointOnAxisProjectsToCenter(t *testing.T) {
	c := NewCamera(WithFovDegrees(55), WithViewport(1920, 1080), WithClip(0.1, 1000))
	nx, ny, nz := ndc(c, 0, 0, -10)
	if !approx(nx, 0) || !approx(ny, 0) {
		t.Errorf("center projects to (%v, %v), want (0, 0)", nx, ny)
	}
	if nz <= 0 || nz >= 1 {
		t.Errorf("depth = %v, want within (0, 1)", nz)
	}
	if _, _, far := ndc(c, 0, 0, -999); far >= 1 || far <= nz {
		t.Errorf("farther point depth = %v, want in (%v, 1)", far, nz)
	}
}

func TestSetViewportUpdatesProjection(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()[0]
	c.SetViewport(200, 100)
	if after := c.ViewProjectionMatrix()[0]; !approx(after, before/2) {
		t.Errorf("m[0] = %v after a 2:1 viewport, want %v", after, before/2)
	}

	c.SetViewport(0, 0)
	if c.Aspect() != 2 {
		t.Errorf("Aspect() = %v after a minimized viewport, want 2", c.Aspect())
	}
}

func TestInvalidSettersIgnored(t *testing.T) {
	c := NewCamera(WithFov(1))
	c.SetFov(0)
	c.SetFov(4)
	c.SetClip(5, 1)
	c.LookAt([3]float32{1, 1, 1}, [3]float32{1, 1, 1})
	if c.Fov() != 1 {
		t.Errorf("Fov() = %v, want 1", c.Fov())
	}
	if near, far := c.Clip(); near != 0.1 || far != 100 {
		t.Errorf("Clip() = %v, %v", near, far)
	}
	if c.Eye() != [3]float32{} {
		t.Errorf("Eye() = %v, want origin", c.Eye())
	}
}

func TestLookAtMovesView(t *testing.T) {
	c := NewCamera()
	c.LookAt([3]float32{0, 0, 5}, [3]float32{0, 0, 0})
	nx, ny, _ := ndc(c, 0, 0, 0)
	if !approx(nx, 0) || !approx(ny, 0) {
		t.Errorf("target projects to (%v, %v)", nx, ny)
	}
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera(WithLookAt([3]float32{1, 2, 3}, [3]float32{1, 2, 0}))
	u := c.Uniform()
	buf := u.Marshal()
	if len(buf) != u.Size() || len(buf) != 80 {
		t.Fatalf("len(Marshal()) = %d, want 80", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])); got != 2 {
		t.Errorf("position.y = %v, want 2", got)
	}
	if u.ViewProj != c.ViewProjectionMatrix() {
		t.Error("uniform matrix differs from ViewProjectionMatrix")
	}
}
