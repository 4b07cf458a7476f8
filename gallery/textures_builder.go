package gallery

import "time"

// TextureLoaderOption is a functional option for configuring the default TextureLoader.
type TextureLoaderOption func(*poolTextureLoader)

// WithWorkers sets how many images are fetched and decoded concurrently.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithWorkers(n int) TextureLoaderOption {
	return func(l *poolTextureLoader) {
		l.workers = n
	}
}

// WithMaxTextureSize bounds the longest edge of decoded images. Zero disables scaling.
//
// Parameters:
//   - size: longest edge in pixels
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithMaxTextureSize(size int) TextureLoaderOption {
	return func(l *poolTextureLoader) {
		l.maxTextureSize = size
	}
}

// WithLoadTimeout bounds how long a single image fetch may take. Zero disables the timeout.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithLoadTimeout(d time.Duration) TextureLoaderOption {
	return func(l *poolTextureLoader) {
		l.timeout = d
	}
}

// WithFetcher replaces the default file/HTTP fetcher.
//
// Parameters:
//   - f: the fetcher
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithFetcher(f Fetcher) TextureLoaderOption {
	return func(l *poolTextureLoader) {
		l.fetcher = f
	}
}
