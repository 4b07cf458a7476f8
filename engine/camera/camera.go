package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// Camera is a perspective camera looking from an eye point at a target. Matrices are rebuilt
// lazily on the first read after a change.
type Camera interface {
	// Eye returns the camera position in world space.
	Eye() [3]float32

	// Target returns the point the camera looks at.
	Target() [3]float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the viewport aspect ratio (width / height).
	Aspect() float32

	// Clip returns the near and far clipping distances.
	Clip() (near, far float32)

	// ViewProjectionMatrix returns projection * view, column-major, with WebGPU's [0, 1] depth range.
	//
	// Returns:
	//   - common.Mat4: the combined matrix
	ViewProjectionMatrix() common.Mat4

	// Uniform returns the camera in its GPU layout.
	Uniform() GPUCameraUniform

	// LookAt moves the eye and the target together.
	//
	// Parameters:
	//   - eye: the new camera position
	//   - target: the point to look at; must differ from eye
	LookAt(eye, target [3]float32)

	// SetViewport derives the aspect ratio from a framebuffer size. Sizes with a zero or negative
	// dimension, as reported by a minimized window, are ignored.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	SetViewport(width, height int)

	// SetFov sets the vertical field of view in radians. Values outside (0, π) are ignored.
	SetFov(fov float32)

	// SetClip sets the clipping distances. Ignored unless 0 < near < far.
	SetClip(near, far float32)
}

type cameraImpl struct {
	mu *sync.Mutex

	eye    [3]float32
	target [3]float32
	up     [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	dirty    bool
	viewProj common.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at the origin looking down -Z with a 45 degree field of view and a
// square viewport.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		target: [3]float32{0, 0, -1},
		up:     [3]float32{0, 1, 0},
		fov:    45 * math.Pi / 180,
		aspect: 1,
		near:   0.1,
		far:    100,
		dirty:  true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Eye() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Clip() (near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near, c.far
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matrix()
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{ViewProj: c.matrix(), CameraPosition: c.eye}
}

func (c *cameraImpl) LookAt(eye, target [3]float32) {
	if eye == target {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye, c.target = eye, target
	c.dirty = true
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = float32(width) / float32(height)
	c.dirty = true
}

func (c *cameraImpl) SetFov(fov float32) {
	if !(fov > 0 && fov < math.Pi) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.dirty = true
}

func (c *cameraImpl) SetClip(near, far float32) {
	if !(near > 0 && near < far) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near, c.far = near, far
	c.dirty = true
}

// matrix rebuilds the view-projection when dirty. Caller must hold the mutex.
func (c *cameraImpl) matrix() common.Mat4 {
	if c.dirty {
		view := common.LookAt(c.eye, c.target, c.up)
		c.viewProj = common.Perspective(c.fov, c.aspect, c.near, c.far).Mul(view)
		c.dirty = false
	}
	return c.viewProj
}
