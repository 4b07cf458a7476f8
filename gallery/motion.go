package gallery

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// Motion tuning.
const (
	// ScrollScale converts velocity into depth units per second.
	ScrollScale = 10.0
	// AutoPlayAcceleration is the velocity gained per second while autoplay is on.
	AutoPlayAcceleration = 0.3
	// DampingFactor is the fraction of velocity kept per reference frame.
	DampingFactor = 0.95
	// DampingReferenceRate is the frame rate DampingFactor is defined at.
	DampingReferenceRate = 60.0
	// WheelStep is the velocity added per wheel pixel before the speed multiplier.
	WheelStep = 0.01
	// WheelPixelsPerNotch converts one wheel notch into pixels.
	WheelPixelsPerNotch = 100.0
	// KeyStep is the velocity added per arrow key press before the speed multiplier.
	KeyStep = 2.0
	// IdleThreshold is how long input must be absent before autoplay resumes.
	IdleThreshold = 3 * time.Second
	// IdleCheckInterval is how often the idle check runs.
	IdleCheckInterval = time.Second
)

// MotionState is the scroll state of one gallery instance.
type MotionState struct {
	// Velocity is signed; positive moves planes toward the camera.
	Velocity float64
	// AutoPlay adds a constant forward acceleration while true.
	AutoPlay bool
	// LastInteraction is the time of the most recent wheel or key input.
	LastInteraction time.Time
}

// MotionController owns a MotionState and applies input, idle and per-frame physics to it.
// It is confined to the loop thread and holds no lock.
type MotionController struct {
	state MotionState
	speed float64
	now   func() time.Time
}

// NewMotionController creates a controller with autoplay on and the interaction clock started at now().
//
// Parameters:
//   - speed: the input multiplier; non-positive values fall back to DefaultSpeed
//   - now: the clock used to stamp interactions
//
// Returns:
//   - *MotionController: the new controller
func NewMotionController(speed float64, now func() time.Time) *MotionController {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if now == nil {
		now = time.Now
	}
	return &MotionController{
		state: MotionState{AutoPlay: true, LastInteraction: now()},
		speed: speed,
		now:   now,
	}
}

// State returns a copy of the current motion state.
func (m *MotionController) State() MotionState {
	return m.state
}

// Wheel applies a wheel event measured in pixels. Positive values scroll forward.
func (m *MotionController) Wheel(deltaPixels float64) {
	m.state.Velocity += deltaPixels * WheelStep * m.speed
	m.interact()
}

// WheelNotches applies a wheel event measured in notches as reported by GLFW, where positive
// is scrolling up. Scrolling down moves forward.
func (m *MotionController) WheelNotches(yoff float64) {
	m.Wheel(-yoff * WheelPixelsPerNotch)
}

// Key applies an arrow key press. It reports whether the key was handled; other keys leave
// the state untouched.
func (m *MotionController) Key(keyCode uint32) bool {
	switch keyCode {
	case common.KeyUp, common.KeyLeft:
		m.state.Velocity -= KeyStep * m.speed
	case common.KeyDown, common.KeyRight:
		m.state.Velocity += KeyStep * m.speed
	default:
		return false
	}
	m.interact()
	return true
}

func (m *MotionController) interact() {
	m.state.AutoPlay = false
	m.state.LastInteraction = m.now()
}

// IdleCheck resumes autoplay once no input has arrived for longer than IdleThreshold.
// It reports whether autoplay was switched on by this call.
func (m *MotionController) IdleCheck(now time.Time) bool {
	if m.state.AutoPlay {
		return false
	}
	if now.Sub(m.state.LastInteraction) > IdleThreshold {
		m.state.AutoPlay = true
		return true
	}
	return false
}

// Step advances the physics by dt seconds and returns the depth delta planes should move by.
// Autoplay acceleration is applied first, then damping normalized to DampingReferenceRate so the
// decay per second does not depend on the frame rate.
func (m *MotionController) Step(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if m.state.AutoPlay {
		m.state.Velocity += AutoPlayAcceleration * dt
	}
	m.state.Velocity *= math.Pow(DampingFactor, dt*DampingReferenceRate)
	return m.state.Velocity * dt * ScrollScale
}
