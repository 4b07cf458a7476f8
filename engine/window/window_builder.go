package window

// WindowBuilderOption is a functional option for configuring a Window.
type WindowBuilderOption func(*engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. Non-positive values keep the default.
//
// Parameters:
//   - width, height: the requested size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize limits how small the window can be resized.
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = width, height
	}
}

// WithMaxSize limits how large the window can be resized. Pass SizeUnlimited to leave a bound open.
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = width, height
	}
}

// WithFullscreen opens the window fullscreen on the primary monitor at the monitor's current
// video mode, ignoring the requested size.
//
// Parameters:
//   - fullscreen: true for a fullscreen window
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFullscreen(fullscreen bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.fullscreen = fullscreen
	}
}

// WithCloseOnEscape controls whether Escape closes the window. When disabled, Escape reaches the
// key-down listener like any other key.
func WithCloseOnEscape(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.closeOnEscape = enabled
	}
}
