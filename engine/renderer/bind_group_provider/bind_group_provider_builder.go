package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBorrowedTextureView references a texture view owned by another provider.
//
// Parameters:
//   - binding: the binding index of the texture
//   - tv: the texture view to reference
//
// Returns:
//   - BindGroupProviderOption: a function that sets the borrowed texture view
func WithBorrowedTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.BorrowTextureView(binding, tv)
	}
}

// WithBorrowedSampler references a sampler owned by another provider.
//
// Parameters:
//   - binding: the binding index of the sampler
//   - s: the sampler to reference
//
// Returns:
//   - BindGroupProviderOption: a function that sets the borrowed sampler
func WithBorrowedSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.BorrowSampler(binding, s)
	}
}
