package gallery

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// Scene geometry.
const (
	// DepthRange is the length of the wrap-around depth axis in world units.
	DepthRange = 50.0
	// MaxHorizontalOffset bounds the horizontal spread of slot base positions.
	MaxHorizontalOffset = 8.0
	// MaxVerticalOffset bounds the vertical spread of slot base positions.
	MaxVerticalOffset = 8.0
	// FadeBand is the normalized depth band at each end of the axis over which planes fade.
	FadeBand = 0.15
	// PlaneBaseSize is the length of the shorter edge of every plane in world units.
	PlaneBaseSize = 2.0
)

// Offset is a slot's base position in the plane perpendicular to the depth axis.
type Offset struct {
	X, Y float64
}

// Layout computes the base XY offset of slot i. The pattern uses golden-ratio derived angle
// steps so neighbouring slots spread around the view without visible repetition.
// Deterministic: the same i always yields the same offset. The second argument, the pool's
// visible count, does not change the result; it is accepted so callers can express the layout
// of a whole pool.
//
// Parameters:
//   - i: the slot index
//
// Returns:
//   - Offset: the slot's base offset
func Layout(i, _ int) Offset {
	fi := float64(i)
	hAngle := math.Mod(fi*2.618, 2*math.Pi)
	vAngle := math.Mod(fi*1.618+math.Pi/3, 2*math.Pi)
	hRadius := float64(i%3) * 1.2
	vRadius := float64((i+1)%4) * 0.8
	return Offset{
		X: math.Sin(hAngle) * hRadius * MaxHorizontalOffset / 3,
		Y: math.Cos(vAngle) * vRadius * MaxVerticalOffset / 4,
	}
}

// InitialDepth spreads visibleCount slots evenly across the depth axis.
//
// Parameters:
//   - i: the slot index
//   - visibleCount: the number of slots in the pool
//
// Returns:
//   - float64: the initial depth in [0, DepthRange)
func InitialDepth(i, visibleCount int) float64 {
	if visibleCount <= 0 {
		return 0
	}
	return common.Wrap(DepthRange/float64(visibleCount)*float64(i), DepthRange)
}

// WorldZ converts a depth on the wrap-around axis into a world-space z coordinate.
// Depth 0 is the far end of the axis and DepthRange the camera end.
//
// Parameters:
//   - depth: depth in [0, DepthRange)
//
// Returns:
//   - float64: world z
func WorldZ(depth float64) float64 {
	return depth - DepthRange/2
}

// Opacity computes the edge-fade opacity for a depth. The fade input is shifted by half the axis,
// so planes are transparent at DepthRange/2, where they pass the camera plane, and fade over
// FadeBand on either side of it. The result is clamped to [0, 1].
//
// Parameters:
//   - depth: depth on the axis
//
// Returns:
//   - float64: opacity in [0, 1]
func Opacity(depth float64) float64 {
	n := common.Wrap(depth/DepthRange+0.5, 1)
	var o float64
	switch {
	case n < FadeBand:
		o = n / FadeBand
	case n > 1-FadeBand:
		o = (1 - n) / FadeBand
	default:
		o = 1
	}
	return common.Clamp(o, 0, 1)
}

// PlaneScale sizes a plane so that the shorter edge is PlaneBaseSize and the image aspect is preserved.
//
// Parameters:
//   - aspect: image width divided by height
//
// Returns:
//   - sx, sy: plane width and height
func PlaneScale(aspect float64) (sx, sy float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	if aspect > 1 {
		return PlaneBaseSize * aspect, PlaneBaseSize
	}
	return PlaneBaseSize, PlaneBaseSize / aspect
}
