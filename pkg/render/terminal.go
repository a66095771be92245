package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mstern/fiolens/pkg/summarize"
)

// Terminal renders summaries as styled terminal output via lipgloss.
// Same layout as Text, with metric columns aligned per run.
type Terminal struct {
	theme Theme
	width int
	title cases.Caser
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width, title: cases.Title(language.English)}
}

// Render formats one summary block for terminal display.
func (t *Terminal) Render(s summarize.Summary) string {
	var sb strings.Builder

	sb.WriteString(t.theme.Bold.Render(t.title.String("summary for ")+s.Source) + "\n")

	for _, rg := range s.Runs {
		sb.WriteString("\n" + t.theme.Bold.Render(fmt.Sprintf("%s RUN #%d", t.theme.Icons.Run, rg.Run)) + "\n")
		t.renderJobs(&sb, rg.Jobs)
	}

	if len(s.Aggregates) > 0 {
		sb.WriteString("\n" + t.theme.Bold.Render(t.theme.Icons.Run+" "+t.title.String("across runs")) + "\n")
		for _, agg := range s.Aggregates {
			sb.WriteString("  " + t.theme.Primary.Render(agg.Name) + " " +
				fmt.Sprintf("runs=%d ", agg.Runs) +
				fmt.Sprintf("gbps=%.4f±%.4f kiops=%.3f±%.3f lat_ms=%.3f±%.3f",
					agg.ThroughputMean, agg.ThroughputStdev,
					agg.IOPSKMean, agg.IOPSKStdev,
					agg.DerivedLatencyMean, agg.DerivedLatencyStdev) + "\n")
		}
	}

	if s.Skipped > 0 {
		sb.WriteString("\n" + t.theme.Warning.Render(fmt.Sprintf("%s %d entr%s skipped (missing or non-numeric fields)",
			t.theme.Icons.Warn, s.Skipped, plural(s.Skipped, "y", "ies"))) + "\n")
	}

	return sb.String()
}

func (t *Terminal) renderJobs(sb *strings.Builder, jobs []summarize.JobSummary) {
	nameWidth := 0
	for _, job := range jobs {
		if w := displayWidth(job.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for _, job := range jobs {
		clat := t.theme.Muted.Render("n/a")
		if job.HasClat {
			clat = fmt.Sprintf("%.3f", job.ClatAvgMs)
		}
		pad := strings.Repeat(" ", nameWidth-displayWidth(job.Name))
		sb.WriteString(fmt.Sprintf("  %s %s%s  %s  %s  %s  %s  %s\n",
			t.theme.Icons.Job,
			t.theme.Primary.Render(job.Name), pad,
			t.theme.Success.Render(fmt.Sprintf("%.4f GB/s", job.ThroughputGBps)),
			fmt.Sprintf("%.3f kIOPS", job.IOPSK),
			fmt.Sprintf("lat %.3f ms", job.DerivedLatencyMs),
			fmt.Sprintf("qd %d", job.IODepth),
			"clat "+clat+" ms"))
	}
}

// displayWidth returns the terminal cell width of s. Uses go-runewidth so
// wide characters in job names keep columns aligned.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
