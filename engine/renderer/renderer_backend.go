package renderer

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the WebGPU backend contract. Every method runs on the thread that created
// the backend.
type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface

	// ConfigureSurface (re)configures the swapchain and recreates the depth and MSAA targets for a
	// new size, releasing the previous targets. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the targets could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the main pass clears to.
	SetClearColor(color wgpu.Color)

	RegisterRenderPipeline(p pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	BeginFrame() error
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)
	EndFrame()
	Present()

	// Release frees the render targets, device, adapter, surface and instance.
	Release()
}
