// Package log provides the application's logging setup, built on top of the
// standard slog package.
//
// The ThrottleHandler wraps another slog.Handler and suppresses repeats of
// high-frequency debug records. The per-target hot loop can emit thousands
// of identical "skipping rank-deficient target" style records on a large
// grid; the handler lets the first few of each message through, then drops
// the rest and reports the suppressed count when the level or message
// changes. Warning-and-above records are never throttled.
//
// # Usage
//
//	logger := log.NewAnalysisLogger(os.Stderr, true) // verbose=true
//	slog.SetDefault(logger)
package log
