// Package gallery implements an infinite scrolling 3D image gallery: a fixed pool of textured
// planes spread by a deterministic pattern along a wrap-around depth axis, driven by wheel and
// arrow key input or idle autoplay, with edge fading near the wrap seam.
//
// The package is independent of the GPU. Rendering goes through the Surface interface and all
// timing through the Scheduler interface, both of which the engine implements.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
)

// Defaults for caller-facing configuration.
const (
	DefaultSpeed        = 1.2
	DefaultVisibleCount = 12

	// CameraFov is the vertical field of view in degrees.
	CameraFov  = 55.0
	CameraNear = 0.1
	CameraFar  = 1000.0
)

// ErrMounted is returned by Mount when the gallery is already attached to a host.
var ErrMounted = errors.New("gallery already mounted")

// Host is the window the gallery draws into and takes input from.
// Passing nil to a Set*Callback method removes the listener.
type Host interface {
	Width() int
	Height() int
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
}

// Scheduler runs gallery work on a single loop thread.
type Scheduler interface {
	// Now returns the scheduler's clock.
	Now() time.Time

	// RequestFrames calls fn once per frame with the elapsed seconds until cancel is called.
	//
	// Returns:
	//   - func(): stops further calls; safe to call more than once
	RequestFrames(fn func(dt float32)) (cancel func())

	// Every calls fn each interval until cancel is called.
	//
	// Returns:
	//   - func(): stops further calls; safe to call more than once
	Every(interval time.Duration, fn func()) (cancel func())

	// Post queues fn to run on the loop thread. Safe to call from any goroutine.
	Post(fn func())
}

// Surface is the GPU-backed drawing target. It owns every texture and plane created through it
// and frees all of them on Release.
type Surface interface {
	PlaneRegistrar
	Drawer

	// Resize reconfigures the surface for a new size in pixels.
	Resize(width, height int)

	// UploadTexture copies staged pixels to the GPU.
	UploadTexture(label string, data common.TextureStagingData) (common.TextureHandle, error)

	// ReleaseTexture frees one texture. Unknown handles are ignored.
	ReleaseTexture(handle common.TextureHandle)

	// Release frees every GPU resource held by the surface, including the surface itself.
	Release()
}

// SurfaceFactory acquires a Surface sized to the host.
type SurfaceFactory func(width, height int) (Surface, error)

// Gallery is one gallery instance. All methods must be called on the scheduler's loop thread,
// except LoadState and Progress which are safe from any goroutine.
type Gallery interface {
	// Mount attaches the gallery to host. When the host has no area yet, mount is deferred until
	// the first resize with a positive size.
	//
	// Parameters:
	//   - host: the window to draw into
	//
	// Returns:
	//   - error: ErrMounted, or the error from acquiring the surface
	Mount(host Host) error

	// Unmount stops the frame loop and idle timer, cancels in-flight loads, removes listeners and
	// releases the surface with every GPU resource. Safe to call when not mounted.
	Unmount()

	// Mounted reports whether the gallery is attached to a host.
	Mounted() bool

	// Resize adapts the camera and surface to a new host size without rebuilding the scene.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// SetSources replaces the image list. A mounted gallery is torn down and rebuilt.
	//
	// Parameters:
	//   - sources: the new images
	//
	// Returns:
	//   - error: error from re-mounting
	SetSources(sources []ImageSource) error

	// LoadState returns the progress of the current load batch.
	LoadState() LoadState

	// Progress returns the loading progress in percent, 0 to 100.
	Progress() float64

	// Motion returns a copy of the current motion state. The zero value is returned before the
	// surface is acquired.
	Motion() MotionState

	// Slots returns a copy of the current slots.
	Slots() []Slot
}

type galleryImpl struct {
	mu *sync.Mutex

	sources      []ImageSource
	speed        float64
	visibleCount int

	scheduler  Scheduler
	newSurface SurfaceFactory
	loader     TextureLoader

	onProgress func(percent float64)
	onSettled  func(state LoadState)

	host       Host
	mounted    bool
	active     bool
	generation uint64

	surface Surface
	camera  camera.Camera
	motion  *MotionController
	pool    SlotPool
	driver  *frameDriver
	batch   *loadBatch
	state   LoadState

	cancelLoads context.CancelFunc
	stopFrames  func()
	stopIdle    func()
}

var _ Gallery = &galleryImpl{}

// NewGallery creates an unmounted gallery. WithScheduler and WithSurfaceFactory are required.
//
// Parameters:
//   - options: functional options to configure the gallery
//
// Returns:
//   - Gallery: the gallery
func NewGallery(options ...GalleryBuilderOption) Gallery {
	g := &galleryImpl{
		mu:           &sync.Mutex{},
		speed:        DefaultSpeed,
		visibleCount: DefaultVisibleCount,
	}
	for _, opt := range options {
		opt(g)
	}
	if g.scheduler == nil {
		panic("gallery: a Scheduler is required")
	}
	if g.newSurface == nil {
		panic("gallery: a SurfaceFactory is required")
	}
	if g.loader == nil {
		g.loader = NewTextureLoader()
	}
	if g.speed <= 0 {
		g.speed = DefaultSpeed
	}
	if g.visibleCount <= 0 {
		g.visibleCount = DefaultVisibleCount
	}
	g.state = LoadState{Total: len(g.sources)}
	return g
}

func (g *galleryImpl) Mount(host Host) error {
	if g.mounted {
		return ErrMounted
	}
	g.host = host
	g.mounted = true
	host.SetResizeCallback(g.Resize)

	w, h := host.Width(), host.Height()
	if w <= 0 || h <= 0 {
		Logger().Info("gallery mount deferred until the host has a size", "width", w, "height", h)
		return nil
	}
	return g.activate(w, h)
}

// activate acquires the surface and starts loading. On failure the gallery is left unmounted.
func (g *galleryImpl) activate(width, height int) error {
	surface, err := g.newSurface(width, height)
	if err != nil {
		Logger().Warn("gallery surface unavailable", "error", err)
		g.Unmount()
		return fmt.Errorf("failed to acquire surface: %w", err)
	}
	g.surface = surface
	g.active = true
	g.generation++
	gen := g.generation

	g.camera = camera.NewCamera(
		camera.WithFovDegrees(CameraFov),
		camera.WithViewport(width, height),
		camera.WithClip(CameraNear, CameraFar),
	)
	g.motion = NewMotionController(g.speed, g.scheduler.Now)

	g.host.SetScrollCallback(func(delta float32) {
		g.motion.WheelNotches(float64(delta))
	})
	g.host.SetKeyDownCallback(func(keyCode uint32) {
		g.motion.Key(keyCode)
	})
	g.stopIdle = g.scheduler.Every(IdleCheckInterval, func() {
		if gen != g.generation {
			return
		}
		if g.motion.IdleCheck(g.scheduler.Now()) {
			Logger().Debug("gallery autoplay resumed")
		}
	})

	Logger().Info("gallery mounted", "width", width, "height", height, "sources", len(g.sources))
	g.startLoading(gen)
	return nil
}

func (g *galleryImpl) startLoading(gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoads = cancel

	sources := g.sources
	g.batch = newLoadBatch(len(sources), g.publish, func(textures []LoadedTexture) {
		g.buildScene(gen, textures)
	})
	g.batch.start()

	g.loader.Load(ctx, sources, func(res LoadResult) {
		g.scheduler.Post(func() {
			g.complete(gen, res)
		})
	})
}

// complete handles one load result on the loop thread.
func (g *galleryImpl) complete(gen uint64, res LoadResult) {
	if gen != g.generation || !g.active {
		Logger().Debug("discarding stale load result", "index", res.Index)
		return
	}
	tex := LoadedTexture{Source: res.Source}
	err := res.Err
	if err == nil {
		tex.Aspect = res.Data.Aspect()
		tex.Handle, err = g.surface.UploadTexture(fmt.Sprintf("gallery_image_%d", res.Index), res.Data)
	}
	if err != nil {
		Logger().Warn("image failed to load", "index", res.Index, "uri", res.Source.URI, "error", err)
	}
	if rerr := g.batch.resolve(res.Index, tex, err); rerr != nil {
		Logger().Warn("unexpected load result", "error", rerr)
		if err == nil {
			g.surface.ReleaseTexture(tex.Handle)
		}
	}
}

func (g *galleryImpl) publish(state LoadState) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
	if g.onProgress != nil {
		g.onProgress(state.ProgressPercent())
	}
}

// buildScene runs once per batch when every source has resolved.
func (g *galleryImpl) buildScene(gen uint64, textures []LoadedTexture) {
	if gen != g.generation || !g.active {
		return
	}
	unused, err := g.pool.Build(textures, g.visibleCount, g.surface)
	if err != nil {
		Logger().Warn("gallery scene build failed", "error", err)
		return
	}
	for _, t := range unused {
		g.surface.ReleaseTexture(t.Handle)
	}

	g.driver = newFrameDriver(g.motion, &g.pool, g.camera, g.surface)
	g.stopFrames = g.scheduler.RequestFrames(func(dt float32) {
		if gen != g.generation {
			return
		}
		if err := g.driver.Tick(float64(dt)); err != nil {
			Logger().Warn("gallery frame failed", "error", err)
		}
	})

	state := g.LoadState()
	Logger().Info("gallery ready", "slots", len(g.pool.Slots()), "loaded", state.Loaded, "failed", state.Failed)
	if g.onSettled != nil {
		g.onSettled(state)
	}
}

func (g *galleryImpl) Unmount() {
	if !g.mounted {
		return
	}
	if g.stopFrames != nil {
		g.stopFrames()
		g.stopFrames = nil
	}
	if g.stopIdle != nil {
		g.stopIdle()
		g.stopIdle = nil
	}
	if g.cancelLoads != nil {
		g.cancelLoads()
		g.cancelLoads = nil
	}
	// Results already queued on the loop thread see a newer generation and are dropped.
	g.generation++

	if g.host != nil {
		g.host.SetResizeCallback(nil)
		g.host.SetScrollCallback(nil)
		g.host.SetKeyDownCallback(nil)
	}
	if g.surface != nil {
		g.surface.Release()
		g.surface = nil
	}

	g.pool.Reset()
	g.driver = nil
	g.batch = nil
	g.camera = nil
	g.motion = nil
	g.host = nil
	g.active = false
	g.mounted = false
	Logger().Info("gallery unmounted")
}

func (g *galleryImpl) Mounted() bool {
	return g.mounted
}

func (g *galleryImpl) Resize(width, height int) {
	if !g.mounted || width <= 0 || height <= 0 {
		return
	}
	if !g.active {
		if err := g.activate(width, height); err != nil {
			Logger().Warn("deferred gallery mount failed", "error", err)
		}
		return
	}
	g.camera.SetViewport(width, height)
	g.surface.Resize(width, height)
}

func (g *galleryImpl) SetSources(sources []ImageSource) error {
	host := g.host
	wasMounted := g.mounted
	g.Unmount()

	g.sources = append([]ImageSource(nil), sources...)
	g.mu.Lock()
	g.state = LoadState{Total: len(g.sources)}
	g.mu.Unlock()

	if !wasMounted {
		return nil
	}
	return g.Mount(host)
}

func (g *galleryImpl) LoadState() LoadState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *galleryImpl) Progress() float64 {
	return g.LoadState().ProgressPercent()
}

func (g *galleryImpl) Motion() MotionState {
	if g.motion == nil {
		return MotionState{}
	}
	return g.motion.State()
}

func (g *galleryImpl) Slots() []Slot {
	return append([]Slot(nil), g.pool.Slots()...)
}
