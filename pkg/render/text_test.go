package render

import (
	"strings"
	"testing"

	"github.com/mstern/fiolens/pkg/summarize"
)

func sampleSummary() summarize.Summary {
	return summarize.Summary{
		Source: "consolidated_nvme.txt",
		Runs: []summarize.RunGroup{
			{Run: 1, Jobs: []summarize.JobSummary{
				{
					Run: 1, Name: "randread4k",
					ThroughputGBps:   0.1048576,
					IOPSK:            12.8,
					DerivedLatencyMs: 2.5,
					IODepth:          32,
					ClatAvgMs:        2.48951,
					HasClat:          true,
					BWSource:         "read_bw=102400KiB/s",
					IOPSSource:       "read_iops=12800",
				},
			}},
		},
		Skipped: 1,
	}
}

func TestText_JobLineFormat(t *testing.T) {
	got := JobLine(sampleSummary().Runs[0].Jobs[0])
	want := "randread4k: throughput_GBps=0.1049, iops_k=12.800, derived_latency_ms=2.500, iodepth=32, clat_avg_ms=2.490"
	if got != want {
		t.Errorf("job line =\n  %s\nwant\n  %s", got, want)
	}
}

func TestText_MissingClatRendersNA(t *testing.T) {
	job := sampleSummary().Runs[0].Jobs[0]
	job.HasClat = false
	if !strings.HasSuffix(JobLine(job), "clat_avg_ms=n/a") {
		t.Errorf("line = %q", JobLine(job))
	}
}

func TestText_RenderBlock(t *testing.T) {
	out := NewText().Render(sampleSummary())

	for _, want := range []string{
		"Summary for consolidated_nvme.txt",
		"===== RUN #1 =====",
		"randread4k: throughput_GBps=0.1049",
		"(bw_src=read_bw=102400KiB/s; iops_src=read_iops=12800)",
		"skipped: 1 entry",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestText_AggregateSection(t *testing.T) {
	s := sampleSummary()
	s.Skipped = 0
	s.Aggregates = []summarize.JobAggregate{{
		Name: "randread4k", Runs: 3,
		ThroughputMean: 0.1, ThroughputStdev: 0.002,
		IOPSKMean: 12.8, IOPSKStdev: 0.1,
		DerivedLatencyMean: 2.5, DerivedLatencyStdev: 0.01,
	}}
	out := NewText().Render(s)
	if !strings.Contains(out, "===== ACROSS RUNS =====") {
		t.Errorf("missing aggregate header:\n%s", out)
	}
	if !strings.Contains(out, "randread4k: runs=3, throughput_GBps=0.1000±0.0020") {
		t.Errorf("missing aggregate line:\n%s", out)
	}
	if strings.Contains(out, "skipped:") {
		t.Errorf("skip section should be absent when nothing skipped:\n%s", out)
	}
}
