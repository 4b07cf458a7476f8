package scene

import (
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/gallery"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource provides the platform surface a renderer draws into. window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// NewSurfaceFactory returns a gallery.SurfaceFactory that creates a WebGPU renderer for src and
// wraps it in a new Scene on every call. Each mount of a gallery gets its own device and surface.
//
// Parameters:
//   - src: the window to render into
//   - rendererOptions: options applied to every renderer
//   - options: options applied to every scene
//
// Returns:
//   - gallery.SurfaceFactory: the factory to pass to the gallery
func NewSurfaceFactory(src SurfaceSource, rendererOptions []renderer.RendererBuilderOption, options ...SceneBuilderOption) gallery.SurfaceFactory {
	return func(width, height int) (gallery.Surface, error) {
		r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, src.SurfaceDescriptor(), width, height, rendererOptions...)
		if err != nil {
			return nil, err
		}
		return NewScene(r, options...)
	}
}
