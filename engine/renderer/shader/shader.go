package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module is written for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage of a render pipeline.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
	declarations               []Annotation
}

// Shader is a pre-processed, reflected WGSL module. It exposes what the renderer needs to build a
// pipeline (module, entry point, vertex layouts, bind group layouts) and what the Scene needs to
// wire bind groups (the @oxy declarations).
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the layout descriptor of one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty one if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all reflected bind group layout descriptors.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is declared there
	BindGroupVarName(group, binding int) string

	// VertexLayouts retrieves the vertex buffer layouts of a vertex shader, slot 0 first.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, empty for fragment shaders
	VertexLayouts() []wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the shader module descriptor built from the processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the group and provider annotations parsed from the source.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation

	// RoleBinding finds the provider annotation carrying a binding role.
	//
	// Parameters:
	//   - role: the binding role to look up
	//
	// Returns:
	//   - group, binding: the location of the binding
	//   - bool: false if no provider annotation has that role
	RoleBinding(role AnnotationArg) (group, binding int, ok bool)
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects WGSL source.
//
// Parameters:
//   - key: a unique identifier for the shader, also used as the module label
//   - shaderType: the stage the source is written for
//   - source: the raw WGSL source, typically embedded with go:embed
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if an annotation is malformed or no entry point for the stage exists
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		shaderType:   shaderType,
		entryPoint:   parseEntryPoint(processed, shaderType),
		declarations: append([]Annotation(nil), pp.Declarations()...),
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
		},
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(processed)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(processed, visibility)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) RoleBinding(role AnnotationArg) (int, int, bool) {
	for _, d := range s.declarations {
		if d.Role() == role {
			return *d.Group, *d.Binding, true
		}
	}
	return 0, 0, false
}
