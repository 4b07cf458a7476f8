package pipeline

import (
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment shaders. Both must be set before registration.
//
// Parameters:
//   - vertex: the vertex stage
//   - fragment: the fragment stage
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vertex, fragment shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vertex
		p.fragmentShader = fragment
	}
}

// WithDepth sets whether fragments are depth tested and whether they write depth.
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthTest = test
		p.state.DepthWrite = write
	}
}

// WithBlend sets the color blend state. A nil state disables blending.
//
// Parameters:
//   - blend: the blend state, usually &AlphaBlend
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBlend(blend *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		if blend == nil {
			p.state.Blend = nil
			return
		}
		b := *blend
		p.state.Blend = &b
	}
}

// WithCulling sets which faces are culled and which winding counts as front.
func WithCulling(mode wgpu.CullMode, frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.CullMode = mode
		p.state.FrontFace = frontFace
	}
}
