package vg

import (
	"log/slog"
	"sync/atomic"
)

// silent is the default logger. Its handler reports every level as
// disabled, so Debug calls on hot paths cost a single check.
var silent = slog.New(slog.DiscardHandler)

var logger atomic.Pointer[slog.Logger]

func init() { logger.Store(silent) }

// SetLogger routes log output of vg, atlas and the backends to l. Pass nil
// to go back to discarding everything, which is also the initial state.
//
// vg logs placements, uploads, atlas evictions and frame submissions at
// [slog.LevelDebug], glyphs the atlas could not place at [slog.LevelWarn],
// and GPU submission failures at [slog.LevelError].
//
//	vg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. It is safe to call from any
// goroutine.
func Logger() *slog.Logger { return logger.Load() }
