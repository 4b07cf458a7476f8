package gallery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// LoadResult is the outcome of loading one image source.
type LoadResult struct {
	// Index is the position of the source in the input list.
	Index int
	// Source is the source that was loaded.
	Source ImageSource
	// Data holds the decoded pixels when Err is nil.
	Data common.TextureStagingData
	// Err is non-nil when the image could not be fetched or decoded.
	Err error
}

// TextureLoader fetches and decodes image sources off the loop thread.
type TextureLoader interface {
	// Load starts one independent load per source and returns immediately.
	// deliver is called exactly once per source, from an arbitrary goroutine and in arbitrary order.
	// Once ctx is cancelled pending sources are delivered with the context error.
	//
	// Parameters:
	//   - ctx: cancelled when the results are no longer wanted
	//   - sources: the sources to load
	//   - deliver: receives each result
	Load(ctx context.Context, sources []ImageSource, deliver func(LoadResult))
}

type poolTextureLoader struct {
	mu *sync.Mutex

	workers        int
	maxTextureSize int
	timeout        time.Duration
	fetcher        Fetcher

	pool worker.DynamicWorkerPool
}

var _ TextureLoader = &poolTextureLoader{}

// NewTextureLoader creates a TextureLoader backed by a bounded worker pool.
// Defaults: 4 workers, DefaultMaxTextureSize, a 30 second per-image timeout and NewFetcher(nil, "").
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - TextureLoader: the loader
func NewTextureLoader(options ...TextureLoaderOption) TextureLoader {
	l := &poolTextureLoader{
		mu:             &sync.Mutex{},
		workers:        4,
		maxTextureSize: DefaultMaxTextureSize,
		timeout:        30 * time.Second,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = NewFetcher(nil, "")
	}
	if l.workers <= 0 {
		l.workers = 1
	}
	return l
}

func (l *poolTextureLoader) Load(ctx context.Context, sources []ImageSource, deliver func(LoadResult)) {
	if len(sources) == 0 {
		return
	}
	l.mu.Lock()
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	}
	pool := l.pool
	l.mu.Unlock()

	// Submission can block once the queue is full, so it never runs on the caller's thread.
	go func() {
		for i, src := range sources {
			pool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					res := l.loadOne(ctx, i, src)
					deliver(res)
					return nil, res.Err
				},
			})
		}
	}()
}

func (l *poolTextureLoader) loadOne(ctx context.Context, i int, src ImageSource) LoadResult {
	res := LoadResult{Index: i, Source: src}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	start := time.Now()
	fctx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	data, err := l.fetcher.Fetch(fctx, src.URI)
	if err != nil {
		res.Err = err
		return res
	}
	res.Data, res.Err = DecodeImage(data, l.maxTextureSize)
	if res.Err == nil {
		Logger().Debug("image decoded", "index", i, "uri", src.URI,
			"width", res.Data.Width, "height", res.Data.Height, "elapsed", time.Since(start))
	}
	return res
}

// LoadState is the aggregate progress of one load batch.
type LoadState struct {
	// Total is the number of sources in the batch.
	Total int
	// Loaded counts resolved sources, successful or not.
	Loaded int
	// Failed counts sources that resolved with an error.
	Failed int
}

// ProgressPercent returns Loaded/Total as a percentage. An empty batch is 100% complete.
func (s LoadState) ProgressPercent() float64 {
	if s.Total <= 0 {
		return 100
	}
	return float64(s.Loaded) / float64(s.Total) * 100
}

// Done reports whether every source has resolved.
func (s LoadState) Done() bool {
	return s.Loaded >= s.Total
}

// Ready reports whether every source has resolved and at least one texture is usable.
func (s LoadState) Ready() bool {
	return s.Done() && s.Loaded-s.Failed > 0
}

// LoadedTexture is a texture resident on the surface, kept in source order.
type LoadedTexture struct {
	Index   int
	Source  ImageSource
	Handle  common.TextureHandle
	Aspect  float64
	Present bool
}

// loadBatch aggregates completions for one run of the pipeline. It is confined to the loop thread.
// Each index resolves at most once and the batch settles exactly once, when the last index resolves.
type loadBatch struct {
	state    LoadState
	resolved []bool
	textures []LoadedTexture
	settled  bool

	onProgress func(LoadState)
	onSettled  func(textures []LoadedTexture)
}

func newLoadBatch(total int, onProgress func(LoadState), onSettled func([]LoadedTexture)) *loadBatch {
	return &loadBatch{
		state:      LoadState{Total: total},
		resolved:   make([]bool, total),
		textures:   make([]LoadedTexture, total),
		onProgress: onProgress,
		onSettled:  onSettled,
	}
}

// start publishes the initial progress and settles an empty batch immediately.
func (b *loadBatch) start() {
	if b.onProgress != nil {
		b.onProgress(b.state)
	}
	b.maybeSettle()
}

// resolve records the outcome for index i. A nil err marks tex as usable.
// Duplicate or out-of-range resolutions are ignored and reported as an error.
func (b *loadBatch) resolve(i int, tex LoadedTexture, err error) error {
	if i < 0 || i >= len(b.resolved) {
		return fmt.Errorf("load result index %d out of range [0, %d)", i, len(b.resolved))
	}
	if b.resolved[i] {
		return fmt.Errorf("load result index %d already resolved", i)
	}
	b.resolved[i] = true
	b.state.Loaded++
	if err != nil {
		b.state.Failed++
	} else {
		tex.Index = i
		tex.Present = true
		b.textures[i] = tex
	}
	if b.onProgress != nil {
		b.onProgress(b.state)
	}
	b.maybeSettle()
	return nil
}

func (b *loadBatch) maybeSettle() {
	if b.settled || !b.state.Done() {
		return
	}
	b.settled = true
	if b.onSettled != nil {
		b.onSettled(b.textures)
	}
}
