package log

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// DefaultMaxRepeats is the number of identical debug/info messages let
// through before further repeats are suppressed.
const DefaultMaxRepeats = 5

// ThrottleHandler wraps another slog.Handler and suppresses repeated
// low-severity messages. Records at warn level and above always pass.
//
// Repeat counting is by record message only, not attributes: the per-target
// loop emits the same message with different coordinates, and it is exactly
// that flood the handler exists to stop.
type ThrottleHandler struct {
	handler    slog.Handler
	maxRepeats int

	// state is shared across WithAttrs/WithGroup clones so a derived
	// logger cannot reset the suppression counts.
	state *throttleState
}

type throttleState struct {
	mu   sync.Mutex
	seen map[string]int
}

// NewThrottleHandler wraps a handler with repeat suppression.
// maxRepeats values below one fall back to DefaultMaxRepeats.
func NewThrottleHandler(handler slog.Handler, maxRepeats int) *ThrottleHandler {
	if maxRepeats < 1 {
		maxRepeats = DefaultMaxRepeats
	}
	return &ThrottleHandler{
		handler:    handler,
		maxRepeats: maxRepeats,
		state:      &throttleState{seen: make(map[string]int)},
	}
}

// Enabled reports whether the wrapped handler handles records at the level.
func (h *ThrottleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle passes the record through unless its message has exceeded the
// repeat budget. On the first suppressed repeat a single notice is emitted
// so the reader knows records are being dropped.
func (h *ThrottleHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.handler.Handle(ctx, r)
	}

	h.state.mu.Lock()
	h.state.seen[r.Message]++
	n := h.state.seen[r.Message]
	h.state.mu.Unlock()

	switch {
	case n <= h.maxRepeats:
		return h.handler.Handle(ctx, r)
	case n == h.maxRepeats+1:
		notice := slog.NewRecord(r.Time, r.Level, r.Message+" (further repeats suppressed)", r.PC)
		return h.handler.Handle(ctx, notice)
	default:
		return nil
	}
}

// WithAttrs returns a handler with the attributes added, sharing the same
// suppression state.
func (h *ThrottleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ThrottleHandler{
		handler:    h.handler.WithAttrs(attrs),
		maxRepeats: h.maxRepeats,
		state:      h.state,
	}
}

// WithGroup returns a handler with the group name, sharing the same
// suppression state.
func (h *ThrottleHandler) WithGroup(name string) slog.Handler {
	return &ThrottleHandler{
		handler:    h.handler.WithGroup(name),
		maxRepeats: h.maxRepeats,
		state:      h.state,
	}
}

// NewAnalysisLogger creates the application logger.
// Verbose selects debug level, otherwise warnings and errors only; the
// throttle keeps a verbose run readable on large grids.
func NewAnalysisLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewThrottleHandler(text, DefaultMaxRepeats))
}
