package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gallery/gallery"
	"github.com/cogentcore/webgpu/wgpu"
)

// PlanePipelineKey is the key of the textured plane pipeline in the renderer's cache.
const PlanePipelineKey = "gallery.planes"

//go:embed assets/plane.vert.wgsl
var planeVertexSource string

//go:embed assets/plane.frag.wgsl
var planeFragmentSource string

// ErrReleased is returned by operations on a released Scene.
var ErrReleased = errors.New("scene released")

// Scene draws the gallery's textured planes through a Renderer. It owns every texture and plane
// created through it, plus the Renderer itself, and frees them all on Release.
// Thread-safe for concurrent access, though drawing is expected on the render thread.
type Scene interface {
	gallery.Surface

	// Name returns the scene's identifier.
	Name() string

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// TextureCount returns the number of live textures.
	TextureCount() int

	// PlaneCount returns the number of registered planes.
	PlaneCount() int

	// DrawnCount returns how many planes the last Draw submitted after culling.
	DrawnCount() int

	// CullingDisabled reports whether frustum culling is off.
	CullingDisabled() bool

	// SetCullingDisabled turns frustum culling off or on.
	SetCullingDisabled(disabled bool)
}

type scene struct {
	mu *sync.RWMutex

	name string
	r    renderer.Renderer

	cameraProvider  bind_group_provider.BindGroupProvider
	meshProvider    bind_group_provider.BindGroupProvider
	samplerProvider bind_group_provider.BindGroupProvider

	// Resolved from the plane shaders' annotations.
	cameraGroup     int
	cameraBinding   int
	planeGroup      int
	planeBinding    int
	textureBinding  int
	samplerBinding  int
	planeDescriptor wgpu.BindGroupLayoutDescriptor

	textures    map[common.TextureHandle]bind_group_provider.BindGroupProvider
	nextTexture common.TextureHandle
	planes      map[common.PlaneHandle]material.Material
	nextPlane   common.PlaneHandle

	cullingDisabled bool
	drawn           int
	released        bool

	// Reused across frames to avoid per-frame allocations.
	writesPool     []bind_group_provider.BufferWrite
	visiblePool    []material.Material
	bindGroupsPool []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene builds the plane pipeline on r and creates the shared camera, quad mesh and sampler
// resources. The scene takes ownership of r: releasing the scene releases the renderer, and so
// does a failed NewScene.
//
// Parameters:
//   - r: the renderer to draw with; its surface must already be configured
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the ready scene
//   - error: an error if a shader, pipeline or shared resource could not be built
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:          &sync.RWMutex{},
		name:        "gallery",
		r:           r,
		textures:    make(map[common.TextureHandle]bind_group_provider.BindGroupProvider),
		nextTexture: 1,
		planes:      make(map[common.PlaneHandle]material.Material),
		nextPlane:   1,
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.init(); err != nil {
		s.Release()
		return nil, fmt.Errorf("scene %q: %w", s.name, err)
	}
	return s, nil
}

func (s *scene) init() error {
	vs, err := shader.NewShader("plane.vert", shader.ShaderTypeVertex, planeVertexSource)
	if err != nil {
		return err
	}
	fs, err := shader.NewShader("plane.frag", shader.ShaderTypeFragment, planeFragmentSource)
	if err != nil {
		return err
	}

	// Planes are drawn back to front with alpha blending, so they test depth but never write it.
	p := pipeline.NewPipeline(PlanePipelineKey,
		pipeline.WithShaders(vs, fs),
		pipeline.WithBlend(&pipeline.AlphaBlend),
		pipeline.WithDepth(true, false),
	)
	if err = s.r.RegisterPipelines(p); err != nil {
		p.Release()
		return err
	}

	if err = s.resolveBindings(vs, fs); err != nil {
		return err
	}
	layouts := renderer.PipelineBindGroupLayouts(p)
	s.planeDescriptor = layouts[s.planeGroup]

	s.cameraProvider = bind_group_provider.NewBindGroupProvider("Camera")
	if err = s.r.InitBindGroup(s.cameraProvider, layouts[s.cameraGroup]); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	s.meshProvider = bind_group_provider.NewBindGroupProvider("Plane Quad")
	indices := material.QuadIndices()
	if err = s.r.InitMeshBuffers(s.meshProvider, material.MarshalQuadVertices(material.QuadVertices()), common.SliceToBytes(indices), len(indices)); err != nil {
		return fmt.Errorf("quad mesh: %w", err)
	}

	s.samplerProvider = bind_group_provider.NewBindGroupProvider("Plane Sampler")
	if err = s.r.InitSampler(s.samplerProvider, s.samplerBinding, renderer.SamplerStagingData{}); err != nil {
		return fmt.Errorf("sampler: %w", err)
	}
	return nil
}

// resolveBindings finds the camera and plane groups and the texture and sampler bindings from the
// shaders' annotations instead of hard-coding indices.
func (s *scene) resolveBindings(vs, fs shader.Shader) error {
	cameraFound, planeFound := false, false
	for _, decl := range append(vs.Declarations(), fs.Declarations()...) {
		if decl.Type != shader.AnnotationTypeBindingGroup || decl.Group == nil || decl.Binding == nil {
			continue
		}
		switch decl.Args[2] {
		case shader.AnnotationArgCamera:
			s.cameraGroup, s.cameraBinding, cameraFound = *decl.Group, *decl.Binding, true
		case shader.AnnotationArgPlaneParams:
			s.planeGroup, s.planeBinding, planeFound = *decl.Group, *decl.Binding, true
		}
	}
	if !cameraFound || !planeFound {
		return errors.New("plane shaders must declare camera and plane_params bindings")
	}
	if s.cameraGroup == s.planeGroup {
		return errors.New("camera and plane bindings must use separate groups")
	}

	textureGroup, textureBinding, ok := fs.RoleBinding(shader.AnnotationArgDiffuseTexture)
	if !ok || textureGroup != s.planeGroup {
		return errors.New("diffuse texture must be bound in the plane group")
	}
	samplerGroup, samplerBinding, ok := fs.RoleBinding(shader.AnnotationArgDiffuseSampler)
	if !ok || samplerGroup != s.planeGroup {
		return errors.New("diffuse sampler must be bound in the plane group")
	}
	s.textureBinding, s.samplerBinding = textureBinding, samplerBinding
	return nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) TextureCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.textures)
}

func (s *scene) PlaneCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.planes)
}

func (s *scene) DrawnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawn
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	if err := s.r.Resize(width, height); err != nil {
		log.Printf("[Scene] resize to %dx%d failed: %v", width, height, err)
	}
}

func (s *scene) UploadTexture(label string, data common.TextureStagingData) (common.TextureHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return 0, ErrReleased
	}

	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := s.r.InitTextureView(provider, s.textureBinding, data); err != nil {
		provider.Release()
		return 0, fmt.Errorf("upload %s: %w", label, err)
	}

	handle := s.nextTexture
	s.nextTexture++
	s.textures[handle] = provider
	return handle, nil
}

func (s *scene) ReleaseTexture(handle common.TextureHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	provider, ok := s.textures[handle]
	if !ok {
		return
	}
	provider.Release()
	delete(s.textures, handle)
}

func (s *scene) AddPlane(label string, texture common.TextureHandle) (common.PlaneHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return 0, ErrReleased
	}
	tex, ok := s.textures[texture]
	if !ok {
		return 0, fmt.Errorf("plane %s: unknown texture %d", label, texture)
	}

	// The view and sampler stay owned by the texture and sampler providers so several planes can
	// show the same image.
	provider := bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithBorrowedTextureView(s.textureBinding, tex.TextureView(s.textureBinding)),
		bind_group_provider.WithBorrowedSampler(s.samplerBinding, s.samplerProvider.Sampler(s.samplerBinding)),
	)
	if err := s.r.InitBindGroup(provider, s.planeDescriptor); err != nil {
		provider.Release()
		return 0, fmt.Errorf("plane %s: %w", label, err)
	}

	handle := s.nextPlane
	s.nextPlane++
	s.planes[handle] = material.NewMaterial(texture, provider,
		material.WithName(label),
		material.WithPipelineKey(PlanePipelineKey),
		material.WithParamsBinding(s.planeBinding),
	)
	return handle, nil
}

func (s *scene) Draw(viewProj [16]float32, planes []common.PlaneInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}

	frustum := common.ExtractFrustum(viewProj)
	cam := camera.GPUCameraUniform{ViewProj: viewProj}

	writes := append(s.writesPool[:0], bind_group_provider.BufferWrite{
		Provider: s.cameraProvider,
		Binding:  s.cameraBinding,
		Data:     cam.Marshal(),
	})
	visible := s.visiblePool[:0]
	for _, inst := range planes {
		mat, ok := s.planes[inst.Plane]
		if !ok || inst.Opacity <= 0 {
			continue
		}
		if !s.cullingDisabled && !frustum.ContainsSphere(inst.Position, planeRadius(inst.Scale)) {
			continue
		}
		writes = append(writes, mat.SetInstance(inst))
		visible = append(visible, mat)
	}
	s.writesPool, s.visiblePool = writes, visible
	s.drawn = len(visible)

	s.r.WriteBuffers(writes)

	// A lost or outdated swapchain image is recovered by the next resize; drop this frame.
	if err := s.r.BeginFrame(); err != nil {
		log.Printf("[Scene] skipping frame: %v", err)
		return nil
	}

	groupCount := max(s.cameraGroup, s.planeGroup) + 1
	if cap(s.bindGroupsPool) < groupCount {
		s.bindGroupsPool = make([]bind_group_provider.BindGroupProvider, groupCount)
	}
	bindGroups := s.bindGroupsPool[:groupCount]
	bindGroups[s.cameraGroup] = s.cameraProvider

	var drawErr error
	for _, mat := range visible {
		bindGroups[s.planeGroup] = mat.BindGroupProvider()
		if err := s.r.DrawCall(mat.PipelineKey(), s.meshProvider, 1, bindGroups); err != nil {
			drawErr = fmt.Errorf("draw %s in scene %q: %w", mat.Name(), s.name, err)
			break
		}
	}

	s.r.EndFrame()
	s.r.Present()
	return drawErr
}

// planeRadius returns the bounding sphere radius of a plane of the given width and height.
func planeRadius(scale [2]float32) float32 {
	return 0.5 * float32(math.Hypot(float64(scale[0]), float64(scale[1])))
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	s.released = true

	// Planes first: their bind groups reference texture views and the sampler.
	for h, mat := range s.planes {
		mat.Release()
		delete(s.planes, h)
	}
	for h, provider := range s.textures {
		provider.Release()
		delete(s.textures, h)
	}
	for _, provider := range []bind_group_provider.BindGroupProvider{s.samplerProvider, s.meshProvider, s.cameraProvider} {
		if provider != nil {
			provider.Release()
		}
	}
	if s.r != nil {
		s.r.Release()
	}
	s.writesPool, s.visiblePool, s.bindGroupsPool = nil, nil, nil
}
