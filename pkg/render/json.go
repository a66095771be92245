package render

import (
	"encoding/json"

	"github.com/mstern/fiolens/pkg/summarize"
)

// JSON renders summaries as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string    `json:"version"`
	Source  string    `json:"source"`
	Runs    []jsonRun `json:"runs"`
	Aggs    []jsonAgg `json:"aggregates,omitempty"`
	Skipped int       `json:"skipped"`
}

type jsonRun struct {
	Run  int       `json:"run"`
	Jobs []jsonJob `json:"jobs"`
}

type jsonJob struct {
	Name             string   `json:"name"`
	ThroughputGBps   float64  `json:"throughput_gbps"`
	IOPSK            float64  `json:"iops_k"`
	DerivedLatencyMs float64  `json:"derived_latency_ms"`
	IODepth          int      `json:"iodepth"`
	ClatAvgMs        *float64 `json:"clat_avg_ms,omitempty"`
	BWSource         string   `json:"bw_source,omitempty"`
	IOPSSource       string   `json:"iops_source,omitempty"`
}

type jsonAgg struct {
	Name                string  `json:"name"`
	Runs                int     `json:"runs"`
	ThroughputMean      float64 `json:"throughput_gbps_mean"`
	ThroughputStdev     float64 `json:"throughput_gbps_stdev"`
	IOPSKMean           float64 `json:"iops_k_mean"`
	IOPSKStdev          float64 `json:"iops_k_stdev"`
	DerivedLatencyMean  float64 `json:"derived_latency_ms_mean"`
	DerivedLatencyStdev float64 `json:"derived_latency_ms_stdev"`
}

// Render formats one summary as JSON.
func (j *JSON) Render(s summarize.Summary) string {
	out := jsonOutput{
		Version: "1.0",
		Source:  s.Source,
		Skipped: s.Skipped,
	}

	for _, rg := range s.Runs {
		jr := jsonRun{Run: rg.Run, Jobs: make([]jsonJob, 0, len(rg.Jobs))}
		for _, job := range rg.Jobs {
			jj := jsonJob{
				Name:             job.Name,
				ThroughputGBps:   job.ThroughputGBps,
				IOPSK:            job.IOPSK,
				DerivedLatencyMs: job.DerivedLatencyMs,
				IODepth:          job.IODepth,
				BWSource:         job.BWSource,
				IOPSSource:       job.IOPSSource,
			}
			if job.HasClat {
				clat := job.ClatAvgMs
				jj.ClatAvgMs = &clat
			}
			jr.Jobs = append(jr.Jobs, jj)
		}
		out.Runs = append(out.Runs, jr)
	}

	for _, agg := range s.Aggregates {
		out.Aggs = append(out.Aggs, jsonAgg{
			Name:                agg.Name,
			Runs:                agg.Runs,
			ThroughputMean:      agg.ThroughputMean,
			ThroughputStdev:     agg.ThroughputStdev,
			IOPSKMean:           agg.IOPSKMean,
			IOPSKStdev:          agg.IOPSKStdev,
			DerivedLatencyMean:  agg.DerivedLatencyMean,
			DerivedLatencyStdev: agg.DerivedLatencyStdev,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
