package profiler

import (
	"math"
	"testing"
	"time"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var reports []Stats
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithQuiet(true),
		WithReportCallback(func(s Stats) { reports = append(reports, s) }),
	)

	for range 49 {
		now = now.Add(20 * time.Millisecond)
		if p.Tick() {
			t.Fatal("Tick() reported before the interval elapsed")
		}
	}
	now = now.Add(20 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("Tick() did not report after one second")
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if math.Abs(reports[0].FPS-50) > 1e-9 {
		t.Errorf("FPS = %v, want 50", reports[0].FPS)
	}
	if p.Last() != reports[0] {
		t.Error("Last() does not match the reported stats")
	}
}
