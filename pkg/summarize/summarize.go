// Package summarize derives per-job performance metrics from parsed fio
// records and aggregates them across repeated runs.
package summarize

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/mstern/fiolens/pkg/consolidated"
	"github.com/mstern/fiolens/pkg/fioparse"
)

// JobSummary holds the derived metrics for one (job, run) pair. Values
// are never mutated after Consolidated returns.
type JobSummary struct {
	Run              int
	Name             string // job name, or the section name when absent
	ThroughputGBps   float64
	IOPSK            float64 // thousands of IOPS
	DerivedLatencyMs float64 // Little's Law estimate from iodepth and IOPS
	IODepth          int
	ClatAvgMs        float64 // fio's measured completion latency average
	HasClat          bool
	BWSource         string // record key the bandwidth came from
	IOPSSource       string // record key the IOPS figure came from
}

// RunGroup collects the job summaries of one run.
type RunGroup struct {
	Run  int
	Jobs []JobSummary
}

// Summary is the result of summarizing one consolidated input.
type Summary struct {
	Source     string // input name, e.g. the consolidated file path
	Runs       []RunGroup
	Aggregates []JobAggregate // cross-run per-job stats, jobs seen in 2+ runs
	Skipped    int            // sections dropped for missing numeric fields
}

// Consolidated summarizes the sections of one consolidated input. A
// section missing a required numeric field (bandwidth, IOPS or iodepth)
// is skipped and counted; the rest of the input is still summarized.
func Consolidated(source string, sections []consolidated.Section) Summary {
	s := Summary{Source: source}
	var current *RunGroup

	for _, sec := range sections {
		if current == nil || current.Run != sec.Run {
			s.Runs = append(s.Runs, RunGroup{Run: sec.Run})
			current = &s.Runs[len(s.Runs)-1]
		}
		job, ok := summarizeSection(sec)
		if !ok {
			s.Skipped++
			continue
		}
		current.Jobs = append(current.Jobs, job)
	}

	// Drop runs whose every section was skipped.
	kept := s.Runs[:0]
	for _, rg := range s.Runs {
		if len(rg.Jobs) > 0 {
			kept = append(kept, rg)
		}
	}
	s.Runs = kept

	s.Aggregates = ComputeAggregates(s.Runs)
	return s
}

// summarizeSection derives one JobSummary from a section body. The body
// may be a raw fio report or an already-parsed key=value block; both land
// on the same record keys.
func summarizeSection(sec consolidated.Section) (JobSummary, bool) {
	rec, err := recordFor(sec.Body)
	if err != nil {
		return JobSummary{}, false
	}

	job := JobSummary{Run: sec.Run, Name: sec.Name}
	if name, ok := rec.Get("job_name"); ok {
		job.Name = name
	}

	depthVal, ok := rec.Get("iodepth")
	if !ok {
		return JobSummary{}, false
	}
	depth, err := strconv.Atoi(strings.TrimSpace(depthVal))
	if err != nil || depth <= 0 {
		return JobSummary{}, false
	}
	job.IODepth = depth

	if !extractBandwidth(rec, &job) {
		return JobSummary{}, false
	}
	iops, ok := extractIOPS(rec, &job)
	if !ok || iops <= 0 {
		return JobSummary{}, false
	}
	job.IOPSK = iops / 1_000
	job.DerivedLatencyMs = float64(depth) / iops * 1_000

	if v, ok := rec.Get("clat_avg"); ok {
		if ms, found := LatencyMs(v); found {
			job.ClatAvgMs = ms
			job.HasClat = true
		}
	}
	return job, true
}

// extractBandwidth fills ThroughputGBps, preferring the run-level summary
// figures over per-direction ones, with the bw_avg sample mean (KiB/s) as
// a last resort.
func extractBandwidth(rec *fioparse.Record, job *JobSummary) bool {
	if key, val, ok := rec.First("run_read_bw", "run_write_bw", "read_bw", "write_bw"); ok {
		if gbps, found := BandwidthGBps(val); found {
			job.ThroughputGBps = gbps
			job.BWSource = key + "=" + val
			return true
		}
	}
	if val, ok := rec.Get("bw_avg"); ok {
		if gbps, found := KiBtoGBps(val); found {
			job.ThroughputGBps = gbps
			job.BWSource = "bw_avg=" + val
			return true
		}
	}
	return false
}

// extractIOPS returns the raw operations-per-second figure.
func extractIOPS(rec *fioparse.Record, job *JobSummary) (float64, bool) {
	if key, val, ok := rec.First("read_iops", "write_iops"); ok {
		if iops, found := IOPS(val); found {
			job.IOPSSource = key + "=" + val
			return iops, true
		}
	}
	if val, ok := rec.Get("iops_avg"); ok {
		if iops, found := IOPS(val); found {
			job.IOPSSource = "iops_avg=" + val
			return iops, true
		}
	}
	return 0, false
}

// recordFor obtains the record for a section body, re-running the report
// parser unless the body is already a serialized record.
func recordFor(body []byte) (*fioparse.Record, error) {
	if isRecordBlock(body) {
		return fioparse.ReadRecord(bytes.NewReader(body))
	}
	return fioparse.Parse(bytes.NewReader(body))
}

// isRecordBlock reports whether body looks like "key = value" lines
// rather than a raw fio report.
func isRecordBlock(body []byte) bool {
	for _, line := range bytes.Split(body, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		return bytes.Contains(line, []byte(" = "))
	}
	return false
}
