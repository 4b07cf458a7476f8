package renderer

import "github.com/cogentcore/webgpu/wgpu"

// SamplerStagingData describes a sampler to create. Zero fields fall back to linear filtering with
// clamp-to-edge addressing.
type SamplerStagingData struct {
	AddressModeU  wgpu.AddressMode
	AddressModeV  wgpu.AddressMode
	AddressModeW  wgpu.AddressMode
	MagFilter     wgpu.FilterMode
	MinFilter     wgpu.FilterMode
	MipmapFilter  wgpu.MipmapFilterMode
	LodMinClamp   float32
	LodMaxClamp   float32
	MaxAnisotropy uint16
	Compare       wgpu.CompareFunction
}

// ClearColorBlack is the default clear color of the main render pass.
var ClearColorBlack = wgpu.Color{R: 0, G: 0, B: 0, A: 1}
