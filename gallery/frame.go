package gallery

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
)

// MaxFrameDelta caps the time step of a single frame, in seconds. Longer gaps (window drags,
// breakpoints, a hidden window) advance the scene as if only this much time had passed.
const MaxFrameDelta = 0.1

// Drawer renders a set of planes with a view-projection matrix.
type Drawer interface {
	Draw(viewProj [16]float32, planes []common.PlaneInstance) error
}

// frameDriver advances motion and slot state once per frame and issues one draw.
type frameDriver struct {
	motion    *MotionController
	pool      *SlotPool
	camera    camera.Camera
	drawer    Drawer
	instances []common.PlaneInstance
}

func newFrameDriver(motion *MotionController, pool *SlotPool, cam camera.Camera, drawer Drawer) *frameDriver {
	return &frameDriver{
		motion:    motion,
		pool:      pool,
		camera:    cam,
		drawer:    drawer,
		instances: make([]common.PlaneInstance, 0, len(pool.Slots())),
	}
}

// Tick runs one frame: autoplay and damping, depth wrap, edge fade, then a draw with the planes
// ordered back to front so alpha blending composes correctly.
func (f *frameDriver) Tick(dt float64) error {
	dt = common.Clamp(dt, 0, MaxFrameDelta)
	f.pool.Advance(f.motion.Step(dt))

	f.instances = f.pool.Instances(f.instances[:0])
	slices.SortStableFunc(f.instances, func(a, b common.PlaneInstance) int {
		return cmp.Compare(a.Position[2], b.Position[2])
	})
	return f.drawer.Draw(f.camera.ViewProjectionMatrix(), f.instances)
}
