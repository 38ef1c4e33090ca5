package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// countLines counts non-empty output lines containing the substring.
func countLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" && strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// TestThrottleHandlerSuppression verifies the repeat budget.
func TestThrottleHandlerSuppression(t *testing.T) {
	t.Parallel()

	t.Run("repeats beyond the budget are dropped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(NewThrottleHandler(
			slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), 3))

		for i := 0; i < 10; i++ {
			logger.Info("repeated message", "i", i)
		}

		// Three passes plus one suppression notice.
		if got := countLines(&buf, "repeated message"); got != 4 {
			t.Errorf("expected 4 output lines, got %d\n%s", got, buf.String())
		}
		if got := countLines(&buf, "further repeats suppressed"); got != 1 {
			t.Errorf("expected exactly one suppression notice, got %d", got)
		}
	})

	t.Run("distinct messages are counted separately", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(NewThrottleHandler(
			slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), 3))

		for i := 0; i < 10; i++ {
			logger.Info("first message")
		}
		logger.Info("second message")

		if got := countLines(&buf, "second message"); got != 1 {
			t.Errorf("expected the unrelated message to pass, got %d lines", got)
		}
	})

	t.Run("warnings always pass", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(NewThrottleHandler(
			slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), 2))

		for i := 0; i < 10; i++ {
			logger.Warn("repeated warning")
		}
		if got := countLines(&buf, "repeated warning"); got != 10 {
			t.Errorf("expected all 10 warnings, got %d", got)
		}
	})

	t.Run("derived loggers share the suppression state", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(NewThrottleHandler(
			slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), 2))

		derived := logger.With("component", "worker")
		logger.Info("shared message")
		logger.Info("shared message")
		derived.Info("shared message")
		derived.Info("shared message")

		// Two pass, one notice, one dropped.
		if got := countLines(&buf, "shared message"); got != 3 {
			t.Errorf("expected 3 output lines across derived loggers, got %d\n%s", got, buf.String())
		}
	})

	t.Run("non-positive budget falls back to the default", func(t *testing.T) {
		t.Parallel()
		h := NewThrottleHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), 0)
		if h.maxRepeats != DefaultMaxRepeats {
			t.Errorf("expected default budget %d, got %d", DefaultMaxRepeats, h.maxRepeats)
		}
	})
}

// TestNewAnalysisLogger verifies the level selection.
func TestNewAnalysisLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewAnalysisLogger(&buf, false)
		logger.Info("informational")
		logger.Warn("warning")
		if strings.Contains(buf.String(), "informational") {
			t.Error("expected info to be dropped when not verbose")
		}
		if !strings.Contains(buf.String(), "warning") {
			t.Error("expected the warning to pass")
		}
	})

	t.Run("verbose logger passes debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewAnalysisLogger(&buf, true)
		logger.Debug("debugging detail")
		if !strings.Contains(buf.String(), "debugging detail") {
			t.Error("expected debug output in verbose mode")
		}
	})
}
