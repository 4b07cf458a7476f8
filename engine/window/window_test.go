package window

import "testing"

func TestWindowOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720, closeOnEscape: true}
	for _, opt := range []WindowBuilderOption{
		WithTitle("Photos"),
		WithSize(0, 900),
		WithMinSize(320, 240),
		WithMaxSize(SizeUnlimited, 2000),
		WithFullscreen(true),
		WithCloseOnEscape(false),
	} {
		opt(w)
	}
	if w.title != "Photos" || w.width != 1280 || w.height != 900 {
		t.Errorf("title/size = %q %dx%d", w.title, w.width, w.height)
	}
	if w.minWidth != 320 || w.minHeight != 240 || w.maxWidth != SizeUnlimited || w.maxHeight != 2000 {
		t.Errorf("limits = min %dx%d max %dx%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
	if !w.fullscreen || w.closeOnEscape {
		t.Errorf("fullscreen=%v closeOnEscape=%v", w.fullscreen, w.closeOnEscape)
	}
}

func TestKeyDownEscape(t *testing.T) {
	var keys []uint32
	w := &engineWindow{closeOnEscape: true}
	w.SetKeyDownCallback(func(k uint32) { keys = append(keys, k) })

	if !w.keyDown(keyEscape) {
		t.Error("Escape should request close")
	}
	if w.keyDown(265) {
		t.Error("arrow key should not request close")
	}
	w.closeOnEscape = false
	if w.keyDown(keyEscape) {
		t.Error("Escape should not close when disabled")
	}
	if len(keys) != 2 || keys[0] != 265 || keys[1] != keyEscape {
		t.Errorf("listener got %v", keys)
	}
}

func TestScrollFallsBackToHorizontal(t *testing.T) {
	var deltas []float32
	w := &engineWindow{}
	w.scroll(0, 1) // no listener yet
	w.SetScrollCallback(func(d float32) { deltas = append(deltas, d) })

	w.scroll(0, 2)
	w.scroll(-1.5, 0)
	w.scroll(0, 0)
	if len(deltas) != 2 || deltas[0] != 2 || deltas[1] != 1.5 {
		t.Errorf("deltas = %v, want [2 1.5]", deltas)
	}
}

func TestFramebufferResizeNotifies(t *testing.T) {
	w := &engineWindow{width: 10, height: 10}
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })
	w.setFramebufferSize(0, 0)
	if w.Width() != 0 || w.Height() != 0 || got != [2]int{0, 0} {
		t.Errorf("size = %dx%d, callback got %v", w.Width(), w.Height(), got)
	}
	if w.IsRunning() {
		t.Error("a window without a platform window is not running")
	}
}
