package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("mesh")
	if p.PipelineKey() != "mesh" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	s := p.State()
	if !s.DepthTest || !s.DepthWrite || s.Blend != nil {
		t.Errorf("defaults should be opaque with depth, got %+v", s)
	}
	if s.DepthCompare() != wgpu.CompareFunctionLess {
		t.Errorf("DepthCompare() = %v", s.DepthCompare())
	}
	if s.CullMode != wgpu.CullModeNone || s.FrontFace != wgpu.FrontFaceCCW || s.Topology != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("primitive state = %+v", s)
	}
	if p.Shader(shader.ShaderTypeVertex) != nil || p.Pipeline() != nil {
		t.Error("shaders and GPU pipeline should be unset")
	}
	p.Release()
}

func TestTransparentPipelineOptions(t *testing.T) {
	p := NewPipeline("planes",
		WithBlend(&AlphaBlend),
		WithDepth(true, false),
		WithCulling(wgpu.CullModeBack, wgpu.FrontFaceCW),
	)
	s := p.State()
	if s.Blend == nil || s.Blend.Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
		t.Errorf("blend = %+v", s.Blend)
	}
	if !s.DepthTest || s.DepthWrite {
		t.Errorf("depth test/write = %v/%v", s.DepthTest, s.DepthWrite)
	}
	if s.CullMode != wgpu.CullModeBack || s.FrontFace != wgpu.FrontFaceCW {
		t.Errorf("culling = %v/%v", s.CullMode, s.FrontFace)
	}

	// State hands out copies.
	s.Blend.Color.SrcFactor = wgpu.BlendFactorZero
	if p.State().Blend.Color.SrcFactor != wgpu.BlendFactorSrcAlpha {
		t.Error("mutating a State copy changed the pipeline")
	}
}

func TestDepthTestOffComparesAlways(t *testing.T) {
	p := NewPipeline("overlay", WithDepth(false, false), WithBlend(nil))
	if got := p.State().DepthCompare(); got != wgpu.CompareFunctionAlways {
		t.Errorf("DepthCompare() = %v", got)
	}
}
