// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// Decode workers produce it off the main thread; the renderer consumes it on the main thread.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Aspect returns the width/height ratio of the staged image, or 1 if the height is zero.
//
// Returns:
//   - float64: the aspect ratio
func (t TextureStagingData) Aspect() float64 {
	if t.Height == 0 {
		return 1
	}
	return float64(t.Width) / float64(t.Height)
}

// TextureHandle identifies a texture uploaded to a render surface. The zero value is never a valid handle.
type TextureHandle uint32

// PlaneHandle identifies a textured plane registered with a render surface. The zero value is never a valid handle.
type PlaneHandle uint32

// PlaneInstance is the per-frame state of one textured plane handed to the renderer.
type PlaneInstance struct {
	// Plane is the handle returned when the plane was registered.
	Plane PlaneHandle
	// Position is the world-space center of the plane.
	Position [3]float32
	// Scale is the world-space width and height of the plane.
	Scale [2]float32
	// Opacity multiplies the texture alpha, in [0, 1].
	Opacity float32
}
