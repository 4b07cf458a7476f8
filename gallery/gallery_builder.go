package gallery

// GalleryBuilderOption is a functional option for configuring a Gallery.
type GalleryBuilderOption func(*galleryImpl)

// WithSources sets the initial image list.
//
// Parameters:
//   - sources: the images to display
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithSources(sources []ImageSource) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.sources = append([]ImageSource(nil), sources...)
	}
}

// WithSpeed sets the input multiplier applied to wheel and key velocity changes.
//
// Parameters:
//   - speed: the multiplier (default DefaultSpeed)
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithSpeed(speed float64) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.speed = speed
	}
}

// WithVisibleCount sets the fixed number of planes in the scene.
//
// Parameters:
//   - n: slot count (default DefaultVisibleCount)
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithVisibleCount(n int) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.visibleCount = n
	}
}

// WithScheduler sets the loop the gallery runs on.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithScheduler(s Scheduler) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.scheduler = s
	}
}

// WithSurfaceFactory sets how the gallery acquires its drawing surface on mount.
//
// Parameters:
//   - f: the factory
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithSurfaceFactory(f SurfaceFactory) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.newSurface = f
	}
}

// WithTextureLoader replaces the default worker-pool texture loader.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithTextureLoader(l TextureLoader) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.loader = l
	}
}

// WithProgressCallback observes loading progress. It runs on the loop thread each time a source
// resolves, and once at the start of every batch.
//
// Parameters:
//   - fn: receives progress in percent
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithProgressCallback(fn func(percent float64)) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.onProgress = fn
	}
}

// WithSettledCallback observes the single settle transition of each batch, after the scene is
// built. A batch settles once every source has resolved, including when every load failed or the
// image list was empty; check state.Ready() to tell whether any texture is showing.
//
// Parameters:
//   - fn: receives the final load state
//
// Returns:
//   - GalleryBuilderOption: option function to apply
func WithSettledCallback(fn func(state LoadState)) GalleryBuilderOption {
	return func(g *galleryImpl) {
		g.onSettled = fn
	}
}
