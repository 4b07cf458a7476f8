package gallery

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

func residentTextures(s *fakeSurface, aspects ...float64) []LoadedTexture {
	out := make([]LoadedTexture, len(aspects))
	for i, a := range aspects {
		if a == 0 {
			continue
		}
		h, _ := s.UploadTexture("t", common.TextureStagingData{Width: 1, Height: 1})
		out[i] = LoadedTexture{Index: i, Handle: h, Aspect: a, Present: true}
	}
	return out
}

func TestSlotPoolBuildIsOneShot(t *testing.T) {
	s := newFakeSurface(1, 1)
	var p SlotPool
	tex := residentTextures(s, 1)
	if _, err := p.Build(tex, 4, s); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := p.Build(tex, 4, s); !errors.Is(err, ErrSceneBuilt) {
		t.Fatalf("second Build() error = %v, want ErrSceneBuilt", err)
	}
	if len(s.planes) != 4 {
		t.Errorf("%d planes registered, want 4", len(s.planes))
	}
	p.Reset()
	if p.Built() || len(p.Slots()) != 0 {
		t.Error("Reset() did not empty the pool")
	}
}

func TestSlotPoolOnlyUsesLoadedTextures(t *testing.T) {
	s := newFakeSurface(1, 1)
	var p SlotPool
	// Index 1 and 3 failed.
	tex := residentTextures(s, 1, 0, 2, 0)
	if _, err := p.Build(tex, 7, s); err != nil {
		t.Fatal(err)
	}
	want := []common.TextureHandle{tex[0].Handle, tex[2].Handle}
	for i, slot := range p.Slots() {
		if slot.Texture != want[i%2] {
			t.Errorf("slot %d texture = %d, want %d", i, slot.Texture, want[i%2])
		}
		if slot.Base != Layout(i, 7) || slot.Depth != InitialDepth(i, 7) {
			t.Errorf("slot %d placed at %v depth %v", i, slot.Base, slot.Depth)
		}
	}
}

func TestSlotPoolEmpty(t *testing.T) {
	s := newFakeSurface(1, 1)
	var p SlotPool
	unused, err := p.Build(residentTextures(s, 0, 0), 12, s)
	if err != nil || len(unused) != 0 || len(p.Slots()) != 0 || !p.Built() {
		t.Errorf("Build() with no textures = (%v, %v), slots %d", unused, err, len(p.Slots()))
	}
	var inst []common.PlaneInstance
	if got := p.Instances(inst); len(got) != 0 {
		t.Errorf("Instances() = %d, want 0", len(got))
	}
}

func TestSlotPoolAdvanceWraps(t *testing.T) {
	s := newFakeSurface(1, 1)
	var p SlotPool
	if _, err := p.Build(residentTextures(s, 1), 2, s); err != nil {
		t.Fatal(err)
	}
	p.Advance(DepthRange*3 + 1)
	if d := p.Slots()[0].Depth; d < 0.999 || d > 1.001 {
		t.Errorf("depth after wrap = %v, want 1", d)
	}
	p.Advance(-2)
	if d := p.Slots()[0].Depth; d < DepthRange-1.001 || d > DepthRange-0.999 {
		t.Errorf("depth after negative wrap = %v, want %v", d, DepthRange-1)
	}
	inst := p.Instances(nil)
	if want := float32(WorldZ(p.Slots()[0].Depth)); inst[0].Position[2] != want {
		t.Errorf("instance z = %v, want %v", inst[0].Position[2], want)
	}
}
