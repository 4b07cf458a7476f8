package gallery

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// ErrSceneBuilt is returned when Build is called on a pool that already holds a scene.
var ErrSceneBuilt = errors.New("slot pool already built")

// Slot is one positioned, textured plane in the gallery. Its base position, scale and texture
// are fixed at build time; only Depth and Opacity change per frame.
type Slot struct {
	Index   int
	Base    Offset
	Depth   float64
	Texture common.TextureHandle
	Plane   common.PlaneHandle
	ScaleX  float64
	ScaleY  float64
	Opacity float64
}

// PlaneRegistrar creates the renderable plane for a slot.
type PlaneRegistrar interface {
	AddPlane(label string, texture common.TextureHandle) (common.PlaneHandle, error)
}

// SlotPool holds the fixed set of slots for one scene build.
type SlotPool struct {
	slots []Slot
	built bool
}

// Slots returns the pool's slots. The slice is owned by the pool.
func (p *SlotPool) Slots() []Slot {
	return p.slots
}

// Built reports whether Build has run since the last Reset.
func (p *SlotPool) Built() bool {
	return p.built
}

// Reset empties the pool so it can be built again.
func (p *SlotPool) Reset() {
	p.slots = nil
	p.built = false
}

// Build creates visibleCount slots from the usable textures. Textures that failed to load are
// skipped, and slot i takes the i-th usable texture modulo the number of usable textures, so
// every slot references a successfully loaded texture. With no usable textures the pool is
// built empty. Build is one-shot; a second call without Reset returns ErrSceneBuilt.
//
// Parameters:
//   - textures: load results in source order
//   - visibleCount: the number of slots to create
//   - registrar: creates one plane per slot
//
// Returns:
//   - []LoadedTexture: usable textures no slot references, so the caller can release them
//   - error: ErrSceneBuilt, or an error from the registrar
func (p *SlotPool) Build(textures []LoadedTexture, visibleCount int, registrar PlaneRegistrar) ([]LoadedTexture, error) {
	if p.built {
		return nil, ErrSceneBuilt
	}
	p.built = true

	usable := make([]LoadedTexture, 0, len(textures))
	for _, t := range textures {
		if t.Present {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 || visibleCount <= 0 {
		return usable, nil
	}

	used := make([]bool, len(usable))
	p.slots = make([]Slot, 0, visibleCount)
	for i := range visibleCount {
		ti := i % len(usable)
		tex := usable[ti]
		used[ti] = true

		sx, sy := PlaneScale(tex.Aspect)
		plane, err := registrar.AddPlane(fmt.Sprintf("gallery_slot_%d", i), tex.Handle)
		if err != nil {
			return nil, fmt.Errorf("failed to register slot %d: %w", i, err)
		}
		depth := InitialDepth(i, visibleCount)
		p.slots = append(p.slots, Slot{
			Index:   i,
			Base:    Layout(i, visibleCount),
			Depth:   depth,
			Texture: tex.Handle,
			Plane:   plane,
			ScaleX:  sx,
			ScaleY:  sy,
			Opacity: Opacity(depth),
		})
	}

	var unused []LoadedTexture
	for i, t := range usable {
		if !used[i] {
			unused = append(unused, t)
		}
	}
	Logger().Debug("slot pool built", "slots", len(p.slots), "textures", len(usable), "unused", len(unused))
	return unused, nil
}

// Advance moves every slot by delta along the depth axis, wrapping into [0, DepthRange),
// and recomputes its edge-fade opacity.
func (p *SlotPool) Advance(delta float64) {
	for i := range p.slots {
		s := &p.slots[i]
		s.Depth = common.Wrap(s.Depth+delta, DepthRange)
		s.Opacity = Opacity(s.Depth)
	}
}

// Instances appends the render state of every slot to dst and returns it.
func (p *SlotPool) Instances(dst []common.PlaneInstance) []common.PlaneInstance {
	for _, s := range p.slots {
		dst = append(dst, common.PlaneInstance{
			Plane:    s.Plane,
			Position: [3]float32{float32(s.Base.X), float32(s.Base.Y), float32(WorldZ(s.Depth))},
			Scale:    [2]float32{float32(s.ScaleX), float32(s.ScaleY)},
			Opacity:  float32(s.Opacity),
		})
	}
	return dst
}
