package engine

import (
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
)

// engine implements the Engine interface.
// Everything except Post runs on the thread that called Run.
type engine struct {
	mu *sync.Mutex

	running  bool
	quitOnce sync.Once

	window window.Window
	clock  func() time.Time

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	nextID    int
	frames    map[int]func(deltaTime float32)
	intervals map[int]*interval
	posted    []func()

	lastFrame time.Time
}

// interval is a repeating timer serviced once per loop iteration.
type interval struct {
	every time.Duration
	next  time.Time
	fn    func()
}

// Engine is the main entry point for the engine.
// It owns a cooperative single-threaded loop driven by the window's message pump: each iteration
// drains posted work, fires due timers, then runs every frame callback with the elapsed time.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the engine's profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Now returns the engine clock.
	//
	// Returns:
	//   - time.Time: the current time
	Now() time.Time

	// RequestFrames registers fn to run once per loop iteration with the delta time in seconds.
	// Callbacks run in registration order.
	//
	// Parameters:
	//   - fn: the frame callback
	//
	// Returns:
	//   - func(): removes the callback; safe to call more than once, including from inside fn
	RequestFrames(fn func(deltaTime float32)) (cancel func())

	// Every registers fn to run each d. A timer that falls behind fires once and skips the missed
	// periods rather than bursting.
	//
	// Parameters:
	//   - d: the period; non-positive periods fire every iteration
	//   - fn: the timer callback
	//
	// Returns:
	//   - func(): removes the timer; safe to call more than once
	Every(d time.Duration, fn func()) (cancel func())

	// Post queues fn to run at the start of the next loop iteration.
	// This is the only method safe to call from other goroutines.
	//
	// Parameters:
	//   - fn: the work to run on the loop thread
	Post(fn func())

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit stops the loop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:        &sync.Mutex{},
		clock:     time.Now,
		frames:    make(map[int]func(deltaTime float32)),
		intervals: make(map[int]*interval),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock))
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Now() time.Time {
	return e.clock()
}

func (e *engine) RequestFrames(fn func(deltaTime float32)) func() {
	e.nextID++
	id := e.nextID
	e.frames[id] = fn
	return func() { delete(e.frames, id) }
}

func (e *engine) Every(d time.Duration, fn func()) func() {
	e.nextID++
	id := e.nextID
	e.intervals[id] = &interval{every: d, next: e.clock().Add(d), fn: fn}
	return func() { delete(e.intervals, id) }
}

func (e *engine) Post(fn func()) {
	e.mu.Lock()
	e.posted = append(e.posted, fn)
	e.mu.Unlock()
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] Run called without a window")
		return
	}
	e.running = true
	e.lastFrame = e.clock()
	e.window.SetUpdateCallback(e.step)
	e.window.ProcessMessages()
	e.running = false
}

// Quit stops the loop by closing the window.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				log.Printf("[Engine] failed to close window: %v", err)
			}
		}
	})
}

// step runs one loop iteration. Recovers from panics in callbacks and quits, so a faulty
// callback cannot leave the GPU mid-frame with the window still open.
func (e *engine) step() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] loop recovered from panic: %v", r)
			e.Quit()
		}
	}()

	start := e.clock()
	e.tick(start)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.clock().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// tick drains posted work, fires due timers and runs frame callbacks for the iteration at now.
func (e *engine) tick(now time.Time) {
	dt := float32(now.Sub(e.lastFrame).Seconds())
	if dt < 0 {
		dt = 0
	}
	e.lastFrame = now

	e.drainPosted()

	for _, id := range sortedKeys(e.intervals) {
		iv, ok := e.intervals[id]
		if !ok || now.Before(iv.next) {
			continue
		}
		iv.next = iv.next.Add(iv.every)
		if !iv.next.After(now) {
			iv.next = now.Add(iv.every)
		}
		iv.fn()
	}

	for _, id := range sortedKeys(e.frames) {
		if fn, ok := e.frames[id]; ok {
			fn(dt)
		}
	}
}

func (e *engine) drainPosted() {
	e.mu.Lock()
	posted := e.posted
	e.posted = nil
	e.mu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
