package profiler

import "time"

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithUpdateInterval sets how often stats are reported.
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces the wall clock.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.clock = now
		}
	}
}

// WithReportCallback receives every report in addition to the log line.
//
// Parameters:
//   - fn: the report receiver
//
// Returns:
//   - ProfilerOption: option function to apply
func WithReportCallback(fn func(Stats)) ProfilerOption {
	return func(p *Profiler) {
		p.onReport = fn
	}
}

// WithQuiet suppresses the log line; report callbacks still fire.
//
// Parameters:
//   - quiet: true to stop logging
//
// Returns:
//   - ProfilerOption: option function to apply
func WithQuiet(quiet bool) ProfilerOption {
	return func(p *Profiler) {
		p.quiet = quiet
	}
}
