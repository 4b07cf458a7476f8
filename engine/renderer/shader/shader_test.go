package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testVertexSource = `
//@oxy:include camera
//@oxy:include plane_params
//@oxy:include quad_vertex

//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform plane plane_params

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.view_proj * plane.model * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}
`

const testFragmentSource = `
//@oxy:include plane_params
//@oxy:group 1 0 storage_uniform plane plane_params

//@oxy:provider 1 1 material diffuse_texture
@group(1) @binding(1) var diffuse_texture: texture_2d<f32>;
//@oxy:provider 1 2 material diffuse_sampler
@group(1) @binding(2) var diffuse_sampler: sampler;

/* block comments /* nest */ and are ignored: @group(9) @binding(9) var nope: sampler; */
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let c = textureSample(diffuse_texture, diffuse_sampler, uv);
    return vec4<f32>(c.rgb, c.a * plane.opacity);
}
`

func TestVertexShaderReflection(t *testing.T) {
	s, err := NewShader("plane.vert", ShaderTypeVertex, testVertexSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.EntryPoint() != "vs_main" {
		t.Errorf("EntryPoint() = %q, want vs_main", s.EntryPoint())
	}
	if strings.Contains(s.Source(), "@oxy:") {
		t.Error("processed source still contains annotations")
	}
	if !strings.Contains(s.Source(), "@group(1) @binding(0) var<uniform> plane: PlaneParams;") {
		t.Errorf("missing generated plane declaration in:\n%s", s.Source())
	}

	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("got %d vertex layouts, want 1", len(layouts))
	}
	if layouts[0].ArrayStride != 20 || len(layouts[0].Attributes) != 2 {
		t.Errorf("layout = stride %d, %d attributes", layouts[0].ArrayStride, len(layouts[0].Attributes))
	}
	if a := layouts[0].Attributes[1]; a.Format != wgpu.VertexFormatFloat32x2 || a.Offset != 12 || a.ShaderLocation != 1 {
		t.Errorf("uv attribute = %+v", a)
	}

	cam := s.BindGroupLayoutDescriptor(0)
	if len(cam.Entries) != 1 || cam.Entries[0].Buffer.Type != wgpu.BufferBindingTypeUniform || cam.Entries[0].Buffer.MinBindingSize != 80 {
		t.Errorf("camera group = %+v", cam.Entries)
	}
	plane := s.BindGroupLayoutDescriptor(1)
	if len(plane.Entries) != 1 || plane.Entries[0].Buffer.MinBindingSize != 80 || plane.Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Errorf("plane group = %+v", plane.Entries)
	}
	if s.BindGroupVarName(0, 0) != "camera" {
		t.Errorf("BindGroupVarName(0,0) = %q", s.BindGroupVarName(0, 0))
	}
}

func TestFragmentShaderReflection(t *testing.T) {
	s, err := NewShader("plane.frag", ShaderTypeFragment, testFragmentSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.EntryPoint() != "fs_main" {
		t.Errorf("EntryPoint() = %q, want fs_main", s.EntryPoint())
	}
	if len(s.VertexLayouts()) != 0 {
		t.Error("fragment shaders have no vertex layouts")
	}
	if _, ok := s.BindGroupLayoutDescriptors()[9]; ok {
		t.Error("declaration inside a block comment was reflected")
	}

	entries := s.BindGroupLayoutDescriptor(1).Entries
	if len(entries) != 3 {
		t.Fatalf("got %d group 1 entries, want 3", len(entries))
	}
	if entries[1].Texture.SampleType != wgpu.TextureSampleTypeFloat || entries[1].Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("texture entry = %+v", entries[1].Texture)
	}
	if entries[2].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("sampler entry = %+v", entries[2].Sampler)
	}

	tests := []struct {
		role        AnnotationArg
		wantBinding int
	}{
		{AnnotationArgDiffuseTexture, 1},
		{AnnotationArgDiffuseSampler, 2},
	}
	for _, tt := range tests {
		g, b, ok := s.RoleBinding(tt.role)
		if !ok || g != 1 || b != tt.wantBinding {
			t.Errorf("RoleBinding(%s) = %d, %d, %v", tt.role, g, b, ok)
		}
	}
	if len(s.Declarations()) != 3 {
		t.Errorf("got %d declarations, want 3", len(s.Declarations()))
	}
}

func TestNewShaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unknown struct", "//@oxy:include lights\n@vertex fn vs_main() {}"},
		{"no entry point", "fn helper() {}"},
		{"bad group", "//@oxy:group x 0 storage_uniform camera camera\n@vertex fn vs_main() {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewShader("bad", ShaderTypeVertex, tt.source); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
