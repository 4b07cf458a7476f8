// Command gallery opens a window and scrolls through images on an endless 3D track.
//
// Usage:
//
//	gallery [flags] [image ...]
//
// Images are local paths, file:// URIs or http(s):// URLs. When given, they replace the images
// listed in the config file. Scroll with the mouse wheel or the arrow keys; Escape quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-gallery/engine"
	"github.com/Carmen-Shannon/oxy-gallery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/Carmen-Shannon/oxy-gallery/gallery"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "path to a gallery TOML config")
	speed := flag.Float64("speed", gallery.DefaultSpeed, "scroll speed multiplier")
	visible := flag.Int("visible", gallery.DefaultVisibleCount, "number of planes on the track")
	width := flag.Int("width", 0, "window width in pixels")
	height := flag.Int("height", 0, "window height in pixels")
	vsync := flag.Bool("vsync", true, "wait for vertical blank when presenting")
	profile := flag.Bool("profile", false, "log frame rate and memory statistics")
	software := flag.Bool("software", false, "force the software fallback adapter")
	fullscreen := flag.Bool("fullscreen", false, "open fullscreen on the primary monitor")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gallery",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	gallery.SetLogger(slog.New(logger))

	cfg := gallery.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = gallery.LoadConfig(*configPath); err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
	}

	// Flags override the config only when given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speed":
			cfg.Speed = *speed
		case "visible":
			cfg.VisibleCount = *visible
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fullscreen":
			cfg.Window.Fullscreen = *fullscreen
		case "vsync":
			cfg.Renderer.VSync = *vsync
		case "profile":
			cfg.Profiling = *profile
		}
	})

	if flag.NArg() > 0 {
		entries := make([]any, flag.NArg())
		for i, arg := range flag.Args() {
			entries[i] = arg
		}
		sources, err := gallery.NormalizeSources(entries...)
		if err != nil {
			logger.Fatal("invalid image arguments", "err", err)
		}
		cfg.Sources = sources
		if *configPath == "" {
			cfg.Loader.BaseDir = "."
		}
	}

	if err := run(cfg, *software, logger); err != nil {
		logger.Fatal("gallery stopped", "err", err)
	}
}

func run(cfg gallery.Config, software bool, logger *log.Logger) error {
	options, err := cfg.GalleryOptions()
	if err != nil {
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(320, 240),
		window.WithFullscreen(cfg.Window.Fullscreen),
	)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Profiling),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithQuiet(true),
			profiler.WithReportCallback(func(s profiler.Stats) {
				logger.Info("frame stats", "fps", fmt.Sprintf("%.1f", s.FPS), "heap_mb", fmt.Sprintf("%.1f", s.HeapMB), "gc", s.GCCount)
			}),
		)),
	)

	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	factory := scene.NewSurfaceFactory(win, []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(software),
	})

	title := cfg.Window.Title
	options = append(options,
		gallery.WithScheduler(eng),
		gallery.WithSurfaceFactory(factory),
		gallery.WithProgressCallback(func(percent float64) {
			win.SetTitle(fmt.Sprintf("%s (loading %.0f%%)", title, percent))
		}),
		gallery.WithSettledCallback(func(state gallery.LoadState) {
			win.SetTitle(title)
			if !state.Ready() {
				logger.Warn("no images could be shown", "total", state.Total, "failed", state.Failed)
				return
			}
			logger.Info("images ready", "succeeded", state.Loaded-state.Failed, "failed", state.Failed)
		}),
	)
	g := gallery.NewGallery(options...)

	// Unmount releases GPU resources, so it must run before Quit tears the window down.
	defer eng.Quit()
	if err := g.Mount(win); err != nil {
		return err
	}
	defer g.Unmount()

	eng.Run()
	return nil
}
