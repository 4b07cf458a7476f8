package pipeline

import (
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// AlphaBlend is straight alpha blending: source over destination.
var AlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// State is the fixed-function state a render pipeline is created with.
type State struct {
	DepthTest  bool
	DepthWrite bool

	// Blend is nil for opaque output.
	Blend *wgpu.BlendState

	CullMode  wgpu.CullMode
	FrontFace wgpu.FrontFace
	Topology  wgpu.PrimitiveTopology
	WriteMask wgpu.ColorWriteMask
}

// DepthCompare returns the depth comparison implied by DepthTest.
func (s State) DepthCompare() wgpu.CompareFunction {
	if s.DepthTest {
		return wgpu.CompareFunctionLess
	}
	return wgpu.CompareFunctionAlways
}

// Pipeline pairs a vertex and fragment shader with the state the renderer builds the GPU
// pipeline from. The GPU object is attached at registration.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// State returns a copy of the fixed-function state.
	State() State

	// Pipeline returns the underlying render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline object
	Pipeline() *wgpu.RenderPipeline

	// SetRenderPipeline attaches the GPU pipeline, releasing any previously attached one.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The pipeline can be registered again afterwards.
	Release()
}

type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	state State

	// nil until the renderer registers this pipeline
	renderPipeline *wgpu.RenderPipeline
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. Defaults describe an opaque mesh:
// depth test and write on, no blending, no culling, counter-clockwise triangle lists.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		state: State{
			DepthTest:  true,
			DepthWrite: true,
			CullMode:   wgpu.CullModeNone,
			FrontFace:  wgpu.FrontFaceCCW,
			Topology:   wgpu.PrimitiveTopologyTriangleList,
			WriteMask:  wgpu.ColorWriteMaskAll,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) State() State {
	s := p.state
	if s.Blend != nil {
		blend := *s.Blend
		s.Blend = &blend
	}
	return s
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	if p.renderPipeline != nil && p.renderPipeline != rp {
		p.renderPipeline.Release()
	}
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
