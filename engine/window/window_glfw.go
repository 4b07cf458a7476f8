package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keyEscape is the GLFW code of the Escape key.
const keyEscape = uint32(glfw.KeyEscape)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
	closed bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	width, height := w.width, w.height
	var monitor *glfw.Monitor
	if w.fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(width, height, w.title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}

	// SizeUnlimited matches glfw.DontCare, so unset bounds pass straight through.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetSizeLimits
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{window: win}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if w.keyDown(uint32(key)) {
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.scroll(xoff, yoff)
	})

	// The framebuffer size is what the swapchain needs; on high-DPI displays it differs from the
	// window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.setFramebufferSize(width, height)
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil || w.internalWindow.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.internalWindow.window)
}

func platformSetTitle(w *engineWindow, title string) {
	if w.internalWindow == nil || w.internalWindow.closed {
		return
	}
	w.internalWindow.window.SetTitle(title)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw := w.internalWindow
	return gw != nil && !gw.closed && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
func platformCloseWindow(w *engineWindow) error {
	gw := w.internalWindow
	if gw == nil {
		return fmt.Errorf("window is not initialized")
	}
	if gw.closed {
		return nil
	}
	gw.closed = true
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	if w.internalWindow == nil || w.internalWindow.closed {
		return false
	}
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
