package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the gallery.toml configuration file.
type Config struct {
	Speed        float64        `toml:"speed"`
	VisibleCount int            `toml:"visible_count"`
	Profiling    bool           `toml:"profiling"`
	Images       []any          `toml:"images"`
	Window       WindowConfig   `toml:"window"`
	Renderer     RendererConfig `toml:"renderer"`
	Loader       LoaderConfig   `toml:"loader"`

	// Sources is Images normalized by LoadConfig.
	Sources []ImageSource `toml:"-"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

type RendererConfig struct {
	VSync bool `toml:"vsync"`
	// MSAA sample count, 1 or 4
	MSAA int `toml:"msaa"`
	// FrameLimit caps frames per second; 0 is uncapped
	FrameLimit float64 `toml:"frame_limit"`
}

type LoaderConfig struct {
	Workers        int    `toml:"workers"`
	MaxTextureSize int    `toml:"max_texture_size"`
	Timeout        string `toml:"timeout"`
	// BaseDir resolves relative image paths. Defaults to the directory of the config file.
	BaseDir string `toml:"base_dir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Speed:        DefaultSpeed,
		VisibleCount: DefaultVisibleCount,
		Window: WindowConfig{
			Title:  "Gallery",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  4,
		},
		Loader: LoaderConfig{
			Workers:        4,
			MaxTextureSize: DefaultMaxTextureSize,
			Timeout:        "30s",
		},
	}
}

// LoadConfig reads a TOML config file over DefaultConfig and normalizes its image list.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or parsed
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Loader.BaseDir == "" {
		cfg.Loader.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// ParseConfig decodes TOML bytes over DefaultConfig.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the document is invalid
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	sources, err := NormalizeSources(cfg.Images...)
	if err != nil {
		return Config{}, err
	}
	cfg.Sources = sources
	if _, err := cfg.LoadTimeout(); err != nil {
		return Config{}, err
	}
	if cfg.Renderer.MSAA != 1 && cfg.Renderer.MSAA != 4 {
		return Config{}, fmt.Errorf("renderer.msaa must be 1 or 4, got %d", cfg.Renderer.MSAA)
	}
	return cfg, nil
}

// LoadTimeout parses Loader.Timeout. An empty value disables the timeout.
func (c Config) LoadTimeout() (time.Duration, error) {
	if c.Loader.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Loader.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid loader.timeout %q: %w", c.Loader.Timeout, err)
	}
	return d, nil
}

// TextureLoaderOptions converts the loader section into TextureLoader options.
// Configs built by hand skip ParseConfig, so the timeout is validated again here.
func (c Config) TextureLoaderOptions() ([]TextureLoaderOption, error) {
	timeout, err := c.LoadTimeout()
	if err != nil {
		return nil, err
	}
	return []TextureLoaderOption{
		WithWorkers(c.Loader.Workers),
		WithMaxTextureSize(c.Loader.MaxTextureSize),
		WithLoadTimeout(timeout),
		WithFetcher(NewFetcher(nil, c.Loader.BaseDir)),
	}, nil
}

// GalleryOptions converts the top-level settings into Gallery options.
//
// Returns:
//   - []GalleryBuilderOption: options for NewGallery
//   - error: error if the loader section is invalid
func (c Config) GalleryOptions() ([]GalleryBuilderOption, error) {
	loaderOpts, err := c.TextureLoaderOptions()
	if err != nil {
		return nil, err
	}
	return []GalleryBuilderOption{
		WithSources(c.Sources),
		WithSpeed(c.Speed),
		WithVisibleCount(c.VisibleCount),
		WithTextureLoader(NewTextureLoader(loaderOpts...)),
	}, nil
}
