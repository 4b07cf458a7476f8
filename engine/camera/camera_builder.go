package camera

import "math"

type CameraBuilderOption func(*cameraImpl)

// WithLookAt places the eye and the point it looks at.
//
// Parameters:
//   - eye: camera position
//   - target: look target; ignored when equal to eye
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithLookAt(eye, target [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if eye != target {
			c.eye, c.target = eye, target
		}
	}
}

// WithFov sets the vertical field of view in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if fov > 0 && fov < math.Pi {
			c.fov = fov
		}
	}
}

// WithFovDegrees sets the vertical field of view in degrees.
func WithFovDegrees(degrees float32) CameraBuilderOption {
	return WithFov(degrees * math.Pi / 180)
}

// WithViewport sets the aspect ratio from a framebuffer size.
//
// Parameters:
//   - width, height: framebuffer size in pixels; non-positive sizes keep the default
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.aspect = float32(width) / float32(height)
		}
	}
}

// WithClip sets the near and far clipping distances.
func WithClip(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && near < far {
			c.near, c.far = near, far
		}
	}
}
