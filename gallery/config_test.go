package gallery

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
speed = 2.0
visible_count = 8
profiling = true
images = [
  "a.jpg",
  { uri = "https://example.com/b.png", alt = "B" },
]

[window]
title = "Art"
width = 1024
fullscreen = true

[renderer]
msaa = 1

[loader]
workers = 2
timeout = "5s"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Speed != 2 || cfg.VisibleCount != 8 || !cfg.Profiling {
		t.Errorf("top-level fields = %v, %v, %v", cfg.Speed, cfg.VisibleCount, cfg.Profiling)
	}
	if cfg.Window.Title != "Art" || cfg.Window.Width != 1024 || cfg.Window.Height != 720 || !cfg.Window.Fullscreen {
		t.Errorf("window = %+v, want fullscreen Art 1024x720", cfg.Window)
	}
	if cfg.Renderer.MSAA != 1 || !cfg.Renderer.VSync {
		t.Errorf("renderer = %+v", cfg.Renderer)
	}
	want := []ImageSource{{URI: "a.jpg"}, {URI: "https://example.com/b.png", AltText: "B"}}
	if len(cfg.Sources) != len(want) {
		t.Fatalf("Sources = %+v, want %+v", cfg.Sources, want)
	}
	for i := range want {
		if cfg.Sources[i] != want[i] {
			t.Errorf("Sources[%d] = %+v, want %+v", i, cfg.Sources[i], want[i])
		}
	}
	if d, _ := cfg.LoadTimeout(); d != 5*time.Second {
		t.Errorf("LoadTimeout() = %v, want 5s", d)
	}
	if cfg.Loader.MaxTextureSize != DefaultMaxTextureSize {
		t.Errorf("MaxTextureSize = %d, want default", cfg.Loader.MaxTextureSize)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []string{
		`speed = "fast"`,
		"[loader]\ntimeout = \"soon\"",
		"[renderer]\nmsaa = 3",
		"images = [1, 2]",
	}
	for _, doc := range tests {
		if _, err := ParseConfig([]byte(doc)); err == nil {
			t.Errorf("ParseConfig(%q) error = nil", doc)
		}
	}
}

func TestGalleryOptionsRejectsBadTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loader.Timeout = "soon"
	if _, err := cfg.TextureLoaderOptions(); err == nil {
		t.Error("TextureLoaderOptions() error = nil")
	}
	if opts, err := cfg.GalleryOptions(); err == nil || opts != nil {
		t.Errorf("GalleryOptions() = %d options, %v; want nil, error", len(opts), err)
	}

	cfg.Loader.Timeout = "250ms"
	opts, err := cfg.GalleryOptions()
	if err != nil {
		t.Fatalf("GalleryOptions() error = %v", err)
	}
	if len(opts) == 0 {
		t.Error("GalleryOptions() returned no options")
	}
}

func TestLoadConfigDefaultsBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.toml")
	if err := os.WriteFile(path, []byte(`images = ["x.png"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Loader.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", cfg.Loader.BaseDir, dir)
	}
	if cfg.Speed != DefaultSpeed || cfg.VisibleCount != DefaultVisibleCount {
		t.Error("defaults not applied")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}
}
