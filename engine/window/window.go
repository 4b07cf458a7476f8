package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// SizeUnlimited leaves a size limit unset.
const SizeUnlimited = -1

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// All methods must be called from the thread that created the window.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized. A minimized
	// window reports 0x0.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel and trackpad scrolling.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll delta in wheel notches (positive = up, negative = down)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key presses, including auto-repeat.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetTitle changes the text shown in the title bar.
	SetTitle(title string)

	// Title returns the current title bar text.
	Title() string

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil after Close
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close destroys the window and releases platform resources. Safe to call more than once.
	Close() error

	// ProcessMessages runs the window message loop, calling the update callback each iteration.
	// Blocks until the window is closed.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied while resizing; SizeUnlimited leaves a bound open.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// Framebuffer size in pixels. On high-DPI displays this differs from the requested size.
	width, height int

	fullscreen     bool
	closeOnEscape  bool
	internalWindow *glfwWindow

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. Defaults to 1280x720 with no size limits, closing on Escape.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:         "Gallery",
		minWidth:      SizeUnlimited,
		minHeight:     SizeUnlimited,
		maxWidth:      SizeUnlimited,
		maxHeight:     SizeUnlimited,
		width:         1280,
		height:        720,
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for platformProcessMessages(w) {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// setFramebufferSize records a new framebuffer size and notifies the resize listener.
func (w *engineWindow) setFramebufferSize(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// keyDown dispatches a key press. Escape closes the window when closeOnEscape is set instead of
// reaching the listener.
//
// Returns:
//   - bool: true when the key requested the window to close
func (w *engineWindow) keyDown(keyCode uint32) bool {
	if w.closeOnEscape && keyCode == keyEscape {
		return true
	}
	if w.onKeyDown != nil {
		w.onKeyDown(keyCode)
	}
	return false
}

// scroll dispatches a wheel event. Trackpads that only report horizontal motion scroll too, with
// a swipe to the left moving forward like a wheel turned up.
func (w *engineWindow) scroll(xoff, yoff float64) {
	if w.onScroll == nil {
		return
	}
	delta := yoff
	if delta == 0 {
		delta = -xoff
	}
	if delta != 0 {
		w.onScroll(float32(delta))
	}
}
