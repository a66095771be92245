package summarize

import "math"

// JobAggregate holds cross-run statistics for one job. Only jobs that
// appear in two or more runs get an aggregate.
type JobAggregate struct {
	Name                string
	Runs                int
	ThroughputMean      float64
	ThroughputStdev     float64
	IOPSKMean           float64
	IOPSKStdev          float64
	DerivedLatencyMean  float64
	DerivedLatencyStdev float64
}

// ComputeAggregates computes per-job mean and sample standard deviation
// across runs, in first-seen job order.
func ComputeAggregates(runs []RunGroup) []JobAggregate {
	byJob := make(map[string][]JobSummary)
	var order []string
	for _, rg := range runs {
		for _, job := range rg.Jobs {
			if _, seen := byJob[job.Name]; !seen {
				order = append(order, job.Name)
			}
			byJob[job.Name] = append(byJob[job.Name], job)
		}
	}

	var aggs []JobAggregate
	for _, name := range order {
		jobs := byJob[name]
		if len(jobs) < 2 {
			continue
		}
		agg := JobAggregate{Name: name, Runs: len(jobs)}
		agg.ThroughputMean, agg.ThroughputStdev = meanStdev(jobs, func(j JobSummary) float64 { return j.ThroughputGBps })
		agg.IOPSKMean, agg.IOPSKStdev = meanStdev(jobs, func(j JobSummary) float64 { return j.IOPSK })
		agg.DerivedLatencyMean, agg.DerivedLatencyStdev = meanStdev(jobs, func(j JobSummary) float64 { return j.DerivedLatencyMs })
		aggs = append(aggs, agg)
	}
	return aggs
}

func meanStdev(jobs []JobSummary, value func(JobSummary) float64) (mean, stdev float64) {
	n := float64(len(jobs))
	for _, j := range jobs {
		mean += value(j)
	}
	mean /= n

	var sum float64
	for _, j := range jobs {
		d := value(j) - mean
		sum += d * d
	}
	// Sample stdev; callers guarantee n >= 2.
	return mean, math.Sqrt(sum / (n - 1))
}
