package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestMergeBindGroupLayoutsOrsVisibility(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 2, Visibility: wgpu.ShaderStageFragment, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat}},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 2 {
		t.Fatalf("got %d groups, want 2", len(merged))
	}
	if got := merged[0].Entries[0].Visibility; got != wgpu.ShaderStageVertex {
		t.Errorf("group 0 visibility = %v", got)
	}

	entries := merged[1].Entries
	if len(entries) != 3 {
		t.Fatalf("group 1 has %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Binding != uint32(i) {
			t.Errorf("entry %d has binding %d", i, e.Binding)
		}
	}
	if entries[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("shared binding visibility = %v", entries[0].Visibility)
	}
	if entries[1].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("texture visibility = %v", entries[1].Visibility)
	}
}

func TestMergeBindGroupLayoutsFragmentOnlyGroup(t *testing.T) {
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		2: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}
	merged := mergeBindGroupLayouts(nil, fragment)
	if _, ok := merged[2]; !ok || len(merged) != 1 {
		t.Errorf("unexpected merge result %+v", merged)
	}
}

func TestRendererOptions(t *testing.T) {
	p := pipeline.NewPipeline("planes")
	clearColor := wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	r := newRenderer(BackendTypeWGPU,
		WithPipeline(p),
		WithPresentMode(PresentModeVSync),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
		WithClearColor(clearColor),
	)

	if r.Pipeline("planes") != p {
		t.Error("WithPipeline should cache the pipeline under its key")
	}
	if r.pendingPresentMode == nil || *r.pendingPresentMode != PresentModeVSync {
		t.Error("present mode not recorded")
	}
	if r.pendingMSAA == nil || *r.pendingMSAA != MSAAOff {
		t.Error("MSAA not recorded")
	}
	if !r.forceFallbackAdapter {
		t.Error("fallback adapter not recorded")
	}
	if r.pendingClearColor == nil || *r.pendingClearColor != clearColor {
		t.Error("clear color not recorded")
	}

	pipelines := r.Pipelines()
	delete(pipelines, "planes")
	if r.Pipeline("planes") == nil {
		t.Error("Pipelines should return a copy")
	}
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	r := newRenderer(BackendTypeWGPU)
	if err := r.DrawCall("missing", nil, 1, nil); err == nil {
		t.Error("expected an error for an unknown pipeline")
	}
}
