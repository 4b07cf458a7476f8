package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferWrite is one queued write of Data into the uniform buffer at Binding of Provider.
// Writes to a released provider are skipped.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources populated by the Renderer. Release frees
	// every one of them except the views and samplers marked as borrowed.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// borrowedViews and borrowedSamplers mark bindings whose resource is owned by another provider,
	// e.g. a texture shared by several planes or the scene-wide sampler.
	borrowedViews    map[int]bool
	borrowedSamplers map[int]bool

	// Mesh providers carry the vertex and index buffers used by DrawCall.

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int

	released bool
}

// BindGroupProvider holds the GPU resources behind one bind group (or one mesh) and frees them
// on Release. The Renderer fills it in; the Scene keeps one per texture, one per plane, one for
// the camera, one for the shared sampler and one for the quad geometry.
//
// Usage pattern:
//  1. Scene creates a BindGroupProvider with a label
//  2. Scene calls Renderer.InitTextureView / InitSampler, or borrows them from another provider
//  3. Scene calls Renderer.InitBindGroup(provider, layout) to create buffers and the bind group
//  4. Scene stages uniform updates as BufferWrite values and flushes them with Renderer.WriteBuffers
//  5. Scene passes the provider to Renderer.DrawCall
type BindGroupProvider interface {
	// Release releases every GPU resource owned by this provider. Borrowed views and samplers are
	// dropped without being released. Safe to call more than once.
	Release()

	// Released reports whether Release has been called.
	//
	// Returns:
	//   - bool: true after Release
	Released() bool

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer for a binding, or nil if not initialized.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Texture returns the texture created for a binding, or nil if none is owned.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Texture: the texture or nil
	Texture(binding int) *wgpu.Texture

	// TextureView returns the texture view for a binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler for a binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	IndexCount() int

	// SetBindGroup sets the bind group after GPU initialization.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores an owned buffer for a binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores an owned texture for a binding.
	SetTexture(binding int, tex *wgpu.Texture)

	// SetTextureView stores an owned texture view for a binding.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// BorrowTextureView stores a texture view owned elsewhere. Release leaves it alone.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view to reference
	BorrowTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores an owned sampler for a binding.
	SetSampler(binding int, s *wgpu.Sampler)

	// BorrowSampler stores a sampler owned elsewhere. Release leaves it alone.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler to reference
	BorrowSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the GPU vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices for draw calls.
	SetIndexCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label used for GPU object names
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:            label,
		buffers:          make(map[int]*wgpu.Buffer),
		textures:         make(map[int]*wgpu.Texture),
		textureViews:     make(map[int]*wgpu.TextureView),
		samplers:         make(map[int]*wgpu.Sampler),
		borrowedViews:    make(map[int]bool),
		borrowedSamplers: make(map[int]bool),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Released() bool {
	return p.released
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.textures[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture) {
	p.textures[binding] = tex
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
	delete(p.borrowedViews, binding)
}

func (p *bindGroupProvider) BorrowTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
	p.borrowedViews[binding] = true
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
	delete(p.borrowedSamplers, binding)
}

func (p *bindGroupProvider) BorrowSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
	p.borrowedSamplers[binding] = true
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	if p.released {
		return
	}
	p.released = true

	// The bind group references the views, samplers and buffers, so it goes first.
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil && !p.borrowedViews[i] {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil && !p.borrowedSamplers[i] {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	clear(p.borrowedViews)
	clear(p.borrowedSamplers)

	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
