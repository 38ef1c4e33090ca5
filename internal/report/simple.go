package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hydrostat/gwflow/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
// Plain text with ASCII formatting pipes cleanly to files and other tools;
// color can be added as an option later if needed.
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-target result table. Without it only the
	// run summary and coverage are printed.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-target result listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run as a text report.
func (w *SimpleWriter) Write(run *model.AnalysisRun) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Groundwater gradient analysis: %s\n", run.Venue)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 40))

	fmt.Fprintf(&b, "Method:        %s\n", run.Parameters.Method)
	fmt.Fprintf(&b, "Radius:        %.0f m\n", run.Parameters.Radius)
	fmt.Fprintf(&b, "Spacing:       %.0f m\n", run.Parameters.Spacing)
	fmt.Fprintf(&b, "Min neighbors: %d\n", run.Parameters.MinNeighbors)
	if len(run.Parameters.Aquifers) > 0 {
		fmt.Fprintf(&b, "Aquifers:      %s\n", strings.Join(run.Parameters.Aquifers, ", "))
	}
	if run.Parameters.DateFrom != 0 || run.Parameters.DateTo != 0 {
		fmt.Fprintf(&b, "Date range:    %s\n", formatDateRange(run.Parameters))
	}
	fmt.Fprintf(&b, "Elapsed:       %s\n\n", run.Elapsed)

	fmt.Fprintf(&b, "Coverage: %d of %d targets fitted (%.0f%%), %d skipped\n",
		len(run.Results), run.TargetCount, 100*run.Coverage(), len(run.Skipped))
	if run.Unconverged > 0 {
		fmt.Fprintf(&b, "Warning: %d robust fits did not converge within the iteration cap\n", run.Unconverged)
	}
	b.WriteString("\n")

	if w.verbose && len(run.Results) > 0 {
		fmt.Fprintf(&b, "%12s %12s %10s %12s %10s %6s\n",
			"x", "y", "wells", "|grad|", "dir(deg)", "P±10°")
		for _, r := range run.Results {
			fmt.Fprintf(&b, "%12.1f %12.1f %10d %12.4g %10.1f %6.2f\n",
				r.Target[0], r.Target[1], r.Count,
				r.GradientMagnitude(), r.DirectionDegrees(), r.DirectionConfidence)
		}
		b.WriteString("\n")
	}

	if len(run.Skipped) > 0 {
		counts := make(map[string]int)
		for _, s := range run.Skipped {
			counts[s.Reason]++
		}
		b.WriteString("Skipped targets:\n")
		for _, reason := range []string{model.SkipInsufficientNeighbors, model.SkipRankDeficient} {
			if n, ok := counts[reason]; ok {
				fmt.Fprintf(&b, "  %s: %d\n", reason, n)
			}
		}
	}

	return w.output.Write([]byte(b.String()))
}

// formatDateRange renders the inclusive YYYYMMDD bounds, with open sides.
func formatDateRange(p model.Parameters) string {
	from, to := "...", "..."
	if p.DateFrom != 0 {
		from = fmt.Sprintf("%d", p.DateFrom)
	}
	if p.DateTo != 0 {
		to = fmt.Sprintf("%d", p.DateTo)
	}
	return from + " to " + to
}
