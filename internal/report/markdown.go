package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/hydrostat/gwflow/internal/model"
)

// MarkdownWriter outputs runs in GitHub Flavored Markdown, designed for
// documentation and sharing. The nao1215/markdown library gives type-safe
// generation of tables and alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.AnalysisRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeCoverage(md, run)
	w.writeResults(md, run)
	w.writeSkipped(md, run)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the parameter table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.AnalysisRun) {
	md.H1("Groundwater Gradient Analysis")
	md.PlainText("")

	rows := [][]string{
		{"Venue", run.Venue},
		{"Method", run.Parameters.Method.String()},
		{"Search radius (m)", fmt.Sprintf("%.0f", run.Parameters.Radius)},
		{"Grid spacing (m)", fmt.Sprintf("%.0f", run.Parameters.Spacing)},
		{"Min neighbors", strconv.Itoa(run.Parameters.MinNeighbors)},
		{"Started", run.StartedAt.Format("2006-01-02 15:04:05")},
		{"Elapsed", run.Elapsed.String()},
	}
	if len(run.Parameters.Aquifers) > 0 {
		rows = append(rows, []string{"Aquifers", fmt.Sprintf("%v", run.Parameters.Aquifers)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCoverage writes the coverage summary and convergence alert.
func (w *MarkdownWriter) writeCoverage(md *markdown.Markdown, run *model.AnalysisRun) {
	md.H2("Coverage")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d of %d targets fitted (%.0f%%); %d skipped.",
		len(run.Results), run.TargetCount, 100*run.Coverage(), len(run.Skipped)))
	md.PlainText("")

	if run.Unconverged > 0 {
		md.Warningf("%d robust fits did not converge within the iteration cap.", run.Unconverged)
		md.PlainText("")
	}
}

// writeResults writes the per-target result table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, run *model.AnalysisRun) {
	md.H2("Fitted Targets")
	md.PlainText("")

	if len(run.Results) == 0 {
		md.PlainText("No targets had enough neighbors to fit.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(run.Results))
	for _, r := range run.Results {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f", r.Target[0]),
			fmt.Sprintf("%.1f", r.Target[1]),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%.4g", r.GradientMagnitude()),
			fmt.Sprintf("%.1f", r.DirectionDegrees()),
			fmt.Sprintf("%.2f", r.DirectionConfidence),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"X (m)", "Y (m)", "Wells", "Gradient", "Direction (deg)", "P(±10°)"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkipped writes the skipped-target accounting.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, run *model.AnalysisRun) {
	if len(run.Skipped) == 0 {
		return
	}

	md.H2("Skipped Targets")
	md.PlainText("")

	counts := make(map[string]int)
	for _, s := range run.Skipped {
		counts[s.Reason]++
	}
	rows := make([][]string, 0, len(counts))
	for _, reason := range []string{model.SkipInsufficientNeighbors, model.SkipRankDeficient} {
		if n, ok := counts[reason]; ok {
			rows = append(rows, []string{reason, strconv.Itoa(n)})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Targets"},
		Rows:   rows,
	})
	md.PlainText("")
}
