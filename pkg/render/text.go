package render

import (
	"fmt"
	"strings"

	"github.com/mstern/fiolens/pkg/summarize"
)

// Text renders summaries as plain fixed-precision text, one line per job
// per run. This is the stable line-oriented contract; Terminal is the
// styled variant of the same layout.
type Text struct{}

// NewText creates a plain text renderer.
func NewText() *Text {
	return &Text{}
}

// Render formats one summary block.
func (t *Text) Render(s summarize.Summary) string {
	var sb strings.Builder

	sb.WriteString("Summary for " + s.Source + "\n")

	for _, rg := range s.Runs {
		sb.WriteString(fmt.Sprintf("\n===== RUN #%d =====\n", rg.Run))
		for _, job := range rg.Jobs {
			sb.WriteString(JobLine(job) + "\n")
			if hint := sourceHint(job); hint != "" {
				sb.WriteString("  " + hint + "\n")
			}
		}
	}

	if len(s.Aggregates) > 0 {
		sb.WriteString("\n===== ACROSS RUNS =====\n")
		for _, agg := range s.Aggregates {
			sb.WriteString(AggregateLine(agg) + "\n")
		}
	}

	if s.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("\nskipped: %d entr%s (missing or non-numeric fields)\n",
			s.Skipped, plural(s.Skipped, "y", "ies")))
	}

	return sb.String()
}

// JobLine formats the per-job summary line. The field layout and
// precision are a contract with downstream tooling; change nothing here
// without changing consumers.
func JobLine(job summarize.JobSummary) string {
	clat := "n/a"
	if job.HasClat {
		clat = fmt.Sprintf("%.3f", job.ClatAvgMs)
	}
	return fmt.Sprintf("%s: throughput_GBps=%.4f, iops_k=%.3f, derived_latency_ms=%.3f, iodepth=%d, clat_avg_ms=%s",
		job.Name, job.ThroughputGBps, job.IOPSK, job.DerivedLatencyMs, job.IODepth, clat)
}

// AggregateLine formats one cross-run aggregate line.
func AggregateLine(agg summarize.JobAggregate) string {
	return fmt.Sprintf("%s: runs=%d, throughput_GBps=%.4f±%.4f, iops_k=%.3f±%.3f, derived_latency_ms=%.3f±%.3f",
		agg.Name, agg.Runs,
		agg.ThroughputMean, agg.ThroughputStdev,
		agg.IOPSKMean, agg.IOPSKStdev,
		agg.DerivedLatencyMean, agg.DerivedLatencyStdev)
}

func sourceHint(job summarize.JobSummary) string {
	var bits []string
	if job.BWSource != "" {
		bits = append(bits, "bw_src="+job.BWSource)
	}
	if job.IOPSSource != "" {
		bits = append(bits, "iops_src="+job.IOPSSource)
	}
	if len(bits) == 0 {
		return ""
	}
	return "(" + strings.Join(bits, "; ") + ")"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
