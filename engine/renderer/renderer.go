package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *wgpu.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines keyed by name and forwards GPU work to its backend.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the given key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline for each given Pipeline and caches it
	// under its key. Pipelines already in the cache from WithPipeline are registered by NewRenderer.
	//
	// Parameters:
	//   - pipelines: the pipelines to create and cache
	//
	// Returns:
	//   - error: the first creation failure, if any
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface and its render targets for a new size.
	Resize(width, height int) error

	// SetPresentMode sets the present mode. It takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the main pass clears to.
	SetClearColor(color wgpu.Color)

	// InitMeshBuffers creates and fills the vertex and index buffers of a mesh provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the bind group (and layout, if the provider has none) for a provider.
	// Buffer bindings without a buffer are allocated at the descriptor's minimum binding size.
	// Texture and sampler bindings must already be populated on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to populate
	//   - descriptor: the reflected layout descriptor of the group
	//
	// Returns:
	//   - error: an error if a resource is missing or could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads RGBA pixels to a new texture and stores it and its view on the provider.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it on the provider.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error

	// WriteBuffers queues the given buffer writes.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the main render pass.
	BeginFrame() error

	// DrawCall records an indexed draw using the cached pipeline for pipelineKey.
	// Bind groups are bound in slice order starting at group 0.
	//
	// Parameters:
	//   - pipelineKey: the key of the cached pipeline
	//   - meshProvider: the provider holding the vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: the providers whose bind groups to set
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the recorded commands.
	EndFrame()

	// Present shows the frame on the surface.
	Present()

	// Release frees the cached pipelines and the backend. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and surface descriptor.
// The surface descriptor is platform-specific and is typically obtained from Window.SurfaceDescriptor().
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surfaceDescriptor: the platform-specific surface descriptor for WebGPU surface creation
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the GPU could not be acquired or a pipeline failed to build
func NewRenderer(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	if err = r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}

	for _, p := range r.pipelineCache {
		if err = r.backend.RegisterRenderPipeline(p); err != nil {
			r.Release()
			return nil, fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
		}
	}
	return r, nil
}

// newRenderer builds a renderer with its options applied and no backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color wgpu.Color) {
	r.backend.SetClearColor(color)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
		}
		r.mu.Lock()
		r.pipelineCache[p.PipelineKey()] = p
		r.mu.Unlock()
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("pipeline %s not found", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for k, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, k)
	}
	r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
}

// PipelineBindGroupLayouts returns the bind group layouts of a pipeline with the vertex and
// fragment stage entries merged, as used for the pipeline layout. Bind groups created from these
// descriptors are compatible with the pipeline.
//
// Parameters:
//   - p: the pipeline whose shaders to inspect
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func PipelineBindGroupLayouts(p pipeline.Pipeline) map[int]wgpu.BindGroupLayoutDescriptor {
	var vertex, fragment map[int]wgpu.BindGroupLayoutDescriptor
	if vs := p.Shader(shader.ShaderTypeVertex); vs != nil {
		vertex = vs.BindGroupLayoutDescriptors()
	}
	if fs := p.Shader(shader.ShaderTypeFragment); fs != nil {
		fragment = fs.BindGroupLayoutDescriptors()
	}
	return mergeBindGroupLayouts(vertex, fragment)
}
