package gallery

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record and reports itself disabled so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the gallery. By default the gallery is silent.
// Pass nil to restore the silent default. Safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: per-texture load timings, scene build details
//   - [slog.LevelInfo]: mount, settle and teardown events
//   - [slog.LevelWarn]: failed image loads and uploads
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current gallery logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
