package fioparse

import "strings"

// keyDescriptions maps exact record keys to short human descriptions,
// surfaced as trailing comments by Record.WriteAnnotated.
var keyDescriptions = map[string]string{
	"job_name":    "fio job name",
	"rw":          "workload type (read/write/randread/randwrite/rw)",
	"ioengine":    "fio ioengine used",
	"iodepth":     "queue depth per job",
	"bs_r":        "read block size range",
	"bs_w":        "write block size range",
	"bs_t":        "trim block size range",
	"groupid":     "fio group id",
	"jobs":        "number of jobs (threads/processes)",
	"err":         "fio job error code",
	"pid":         "fio job pid",
	"timestamp":   "fio-reported wall-clock timestamp",
	"fio_version": "fio version",

	"layout_files": "number of files laid out",
	"layout_size":  "file size used for layout",

	"read_iops":  "read IOPS (fio)",
	"read_bw":    "read bandwidth (fio)",
	"read_io":    "total read bytes transferred",
	"read_run":   "read run duration (msec range)",
	"write_iops": "write IOPS (fio)",
	"write_bw":   "write bandwidth (fio)",
	"write_io":   "total write bytes transferred",
	"write_run":  "write run duration (msec range)",

	"slat_min":   "submission latency min (ns)",
	"slat_max":   "submission latency max (ns)",
	"slat_avg":   "submission latency avg (ns)",
	"slat_stdev": "submission latency stdev (ns)",
	"clat_min":   "completion latency min (usec)",
	"clat_max":   "completion latency max (usec)",
	"clat_avg":   "completion latency avg (usec)",
	"clat_stdev": "completion latency stdev (usec)",

	"lat_usec_min":   "total latency min (usec)",
	"lat_usec_max":   "total latency max (usec)",
	"lat_usec_avg":   "total latency avg (usec)",
	"lat_usec_stdev": "total latency stdev (usec)",

	"bw_min":       "bandwidth sample min",
	"bw_max":       "bandwidth sample max",
	"bw_per":       "bandwidth sample coverage percent",
	"bw_avg":       "bandwidth sample avg",
	"bw_stdev":     "bandwidth sample stdev",
	"bw_samples":   "bandwidth samples count",
	"iops_min":     "iops sample min",
	"iops_max":     "iops sample max",
	"iops_avg":     "iops sample avg",
	"iops_stdev":   "iops sample stdev",
	"iops_samples": "iops samples count",

	"cpu_usr":  "cpu user percent",
	"cpu_sys":  "cpu system percent",
	"cpu_ctx":  "context switches",
	"cpu_majf": "major faults",
	"cpu_minf": "minor faults",

	"issued_total":   "issued rwts totals (r,w,trim,sync)",
	"issued_short":   "short ios (r,w,trim,sync)",
	"issued_dropped": "dropped ios (r,w,trim,sync)",

	"latency_cfg_target":     "latency target config",
	"latency_cfg_window":     "latency window config",
	"latency_cfg_percentile": "latency percentile target",
	"latency_cfg_depth":      "latency depth config",
}

// Describe returns a one-line description for a record key, or "" when the
// key is unknown. Prefixed key families are matched after the exact map.
func Describe(key string) string {
	if desc, ok := keyDescriptions[key]; ok {
		return desc
	}
	switch {
	case strings.HasPrefix(key, "clat_pct_"):
		return "completion latency percentile (usec)"
	case strings.HasPrefix(key, "lat_usec_"):
		return "percent of IOs in latency bucket (usec)"
	case strings.HasPrefix(key, "lat_msec_"):
		return "percent of IOs in latency bucket (msec)"
	case strings.HasPrefix(key, "iodepth_dist_"):
		return "percent time at this queue depth"
	case strings.HasPrefix(key, "submit_"):
		return "submit queue depth bucket percent"
	case strings.HasPrefix(key, "complete_"):
		return "complete queue depth bucket percent"
	case strings.HasPrefix(key, "run_read_"):
		return "run summary (read)"
	case strings.HasPrefix(key, "run_write_"):
		return "run summary (write)"
	case strings.HasPrefix(key, "disk_"):
		return "per-disk fio disk stats"
	}
	return ""
}
