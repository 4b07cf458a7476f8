package material

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/bind_group_provider"
)

type material struct {
	name        string
	texture     common.TextureHandle
	pipelineKey string

	provider      bind_group_provider.BindGroupProvider
	paramsBinding int

	params GPUPlaneParams
	// reused by SetInstance; the renderer copies it during WriteBuffers
	paramsBuf []byte
}

// Material is the GPU-side state of one gallery plane: which texture it shows, which pipeline draws
// it, and the bind group holding its PlaneParams uniform together with the texture and sampler.
type Material interface {
	// Name returns the debug label of the material.
	Name() string

	// Texture returns the handle of the texture this material samples.
	Texture() common.TextureHandle

	// PipelineKey returns the key of the render pipeline that draws this material.
	PipelineKey() string

	// Params returns the uniform computed by the last SetInstance.
	Params() GPUPlaneParams

	// SetInstance recomputes the plane uniform from this frame's instance state.
	//
	// Parameters:
	//   - p: the plane instance for this frame
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the write updating the uniform; valid until the next SetInstance
	SetInstance(p common.PlaneInstance) bind_group_provider.BufferWrite

	// BindGroupProvider returns the provider behind the material's bind group, or nil after Release.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Release frees the material's bind group and uniform buffer. Borrowed texture views and
	// samplers stay with their owners. Safe to call more than once.
	Release()
}

var _ Material = &material{}

// NewMaterial wraps an initialized bind group provider as a plane material. The material takes
// ownership of provider.
//
// Parameters:
//   - texture: the texture the plane shows
//   - provider: the plane's bind group, already created by the renderer
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(texture common.TextureHandle, provider bind_group_provider.BindGroupProvider, options ...MaterialBuilderOption) Material {
	m := &material{
		texture:  texture,
		provider: provider,
	}
	for _, opt := range options {
		opt(m)
	}
	m.params = NewGPUPlaneParams(common.PlaneInstance{Scale: [2]float32{1, 1}, Opacity: 1})
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Texture() common.TextureHandle {
	return m.texture
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) Params() GPUPlaneParams {
	return m.params
}

func (m *material) SetInstance(p common.PlaneInstance) bind_group_provider.BufferWrite {
	m.params = NewGPUPlaneParams(p)
	m.paramsBuf = m.params.AppendMarshal(m.paramsBuf[:0])
	return bind_group_provider.BufferWrite{
		Provider: m.provider,
		Binding:  m.paramsBinding,
		Data:     m.paramsBuf,
	}
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.provider
}

func (m *material) Release() {
	if m.provider != nil {
		m.provider.Release()
		m.provider = nil
	}
}
