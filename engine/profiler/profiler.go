package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one profiling report covering the last update interval.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	clock    func() time.Time
	quiet    bool
	onReport func(Stats)
	last     Stats
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		clock:          time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()
	return p
}

// Last returns the most recent report, or the zero Stats before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Reports statistics when the update interval has elapsed: FPS, heap usage, allocation rate,
// GC count/pause times and total memory.
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.clock()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	s := Stats{FPS: float64(p.frameCount) / elapsed.Seconds()}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative heap bytes (tracks churn). Sys: process footprint.
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	}
	if p.onReport != nil {
		p.onReport(s)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
