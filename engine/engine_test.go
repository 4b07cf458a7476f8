package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

func newTestEngine(t *testing.T) (*engine, *time.Time) {
	t.Helper()
	now := time.Unix(100, 0)
	e := NewEngine(WithClock(func() time.Time { return now })).(*engine)
	e.lastFrame = now
	return e, &now
}

func TestFrameCallbacksReceiveDelta(t *testing.T) {
	e, now := newTestEngine(t)
	var got []float32
	cancel := e.RequestFrames(func(dt float32) { got = append(got, dt) })

	*now = now.Add(16 * time.Millisecond)
	e.tick(*now)
	*now = now.Add(34 * time.Millisecond)
	e.tick(*now)
	cancel()
	cancel()
	*now = now.Add(time.Second)
	e.tick(*now)

	if len(got) != 2 {
		t.Fatalf("frame callback ran %d times, want 2", len(got))
	}
	if got[0] < 0.0159 || got[0] > 0.0161 || got[1] < 0.0339 || got[1] > 0.0341 {
		t.Errorf("deltas = %v, want [0.016 0.034]", got)
	}
}

func TestFrameCallbackCanCancelItself(t *testing.T) {
	e, now := newTestEngine(t)
	runs := 0
	var cancel func()
	cancel = e.RequestFrames(func(float32) {
		runs++
		cancel()
	})
	other := 0
	e.RequestFrames(func(float32) { other++ })
	for range 3 {
		*now = now.Add(time.Millisecond)
		e.tick(*now)
	}
	if runs != 1 || other != 3 {
		t.Errorf("self-cancelling ran %d times, other ran %d times; want 1 and 3", runs, other)
	}
}

func TestEveryFiresOnSchedule(t *testing.T) {
	e, now := newTestEngine(t)
	fired := 0
	cancel := e.Every(time.Second, func() { fired++ })

	*now = now.Add(999 * time.Millisecond)
	e.tick(*now)
	if fired != 0 {
		t.Fatalf("fired %d times before the period", fired)
	}
	*now = now.Add(time.Millisecond)
	e.tick(*now)
	if fired != 1 {
		t.Fatalf("fired %d times after one period, want 1", fired)
	}

	// A long stall fires once rather than catching up.
	*now = now.Add(10 * time.Second)
	e.tick(*now)
	if fired != 2 {
		t.Fatalf("fired %d times after a stall, want 2", fired)
	}

	cancel()
	*now = now.Add(10 * time.Second)
	e.tick(*now)
	if fired != 2 {
		t.Errorf("fired after cancel")
	}
}

func TestPostRunsOnNextTick(t *testing.T) {
	e, now := newTestEngine(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Post(func() {
				mu.Lock()
				ran++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	if ran != 0 {
		t.Fatal("posted work ran before a tick")
	}

	order := []string{}
	e.RequestFrames(func(float32) { order = append(order, "frame") })
	e.Post(func() { order = append(order, "post") })
	*now = now.Add(time.Millisecond)
	e.tick(*now)
	if ran != 8 {
		t.Errorf("ran %d posted closures, want 8", ran)
	}
	if len(order) != 2 || order[0] != "post" {
		t.Errorf("order = %v, want posted work before frames", order)
	}
}

func TestSetRenderFrameLimit(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetRenderFrameLimit(50)
	if e.renderFrameLimit != 20*time.Millisecond {
		t.Errorf("renderFrameLimit = %v, want 20ms", e.renderFrameLimit)
	}
	e.SetRenderFrameLimit(0)
	if e.renderFrameLimit != 0 {
		t.Errorf("renderFrameLimit = %v, want 0", e.renderFrameLimit)
	}
}

// fakeWindow runs the update callback a fixed number of times, or until closed.
type fakeWindow struct {
	iterations int
	update     func()
	closes     int
}

func (w *fakeWindow) SetUpdateCallback(callback func())          { w.update = callback }
func (w *fakeWindow) SetResizeCallback(func(width, height int))  {}
func (w *fakeWindow) SetScrollCallback(func(delta float32))      {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32))    {}
func (w *fakeWindow) SetTitle(string)                            {}
func (w *fakeWindow) Title() string                              { return "" }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool                            { return w.closes == 0 }
func (w *fakeWindow) Width() int                                 { return 800 }
func (w *fakeWindow) Height() int                                { return 600 }
func (w *fakeWindow) Close() error                               { w.closes++; return nil }

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.iterations && w.IsRunning(); i++ {
		if w.update != nil {
			w.update()
		}
	}
}

var _ window.Window = &fakeWindow{}

func TestRunDrivesFramesUntilQuit(t *testing.T) {
	w := &fakeWindow{iterations: 10}
	e := NewEngine(WithWindow(w))
	frames := 0
	e.RequestFrames(func(float32) {
		frames++
		if frames == 3 {
			e.Quit()
		}
	})
	e.Run()
	if frames != 3 {
		t.Errorf("ran %d frames, want 3", frames)
	}
	e.Quit()
	if w.closes != 1 {
		t.Errorf("window closed %d times, want 1", w.closes)
	}
}

func TestPanicInCallbackQuits(t *testing.T) {
	w := &fakeWindow{iterations: 5}
	e := NewEngine(WithWindow(w))
	calls := 0
	e.RequestFrames(func(float32) {
		calls++
		panic("boom")
	})
	e.Run()
	if calls != 1 || w.closes != 1 {
		t.Errorf("calls=%d closes=%d, want 1 and 1", calls, w.closes)
	}
}

func TestRunWithoutWindowReturns(t *testing.T) {
	e := NewEngine()
	e.Run()
	e.Quit()
	if e.Window() != nil {
		t.Error("headless engine reported a window")
	}
}
