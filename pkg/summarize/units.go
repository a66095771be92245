package summarize

import (
	"regexp"
	"strconv"
	"strings"
)

// bytesPerGB is the decimal output unit for throughput. fio reports
// bandwidth with binary prefixes (KiB/MiB/GiB) but the summary unit is
// decimal GB/s; the mismatch is deliberate and kept, not corrected.
const bytesPerGB = 1_000_000_000

// byteMultipliers maps a bandwidth unit token (lowercased) to bytes.
// One table for every conversion — bandwidth and latency fields share it
// rather than duplicating suffix logic.
var byteMultipliers = map[string]float64{
	"b":   1,
	"kb":  1_000,
	"kib": 1024,
	"mb":  1_000_000,
	"mib": 1024 * 1024,
	"gb":  1_000_000_000,
	"gib": 1024 * 1024 * 1024,
	"tb":  1_000_000_000_000,
	"tib": 1024 * 1024 * 1024 * 1024,
}

// latencyToMs maps a latency unit suffix (lowercased) to milliseconds.
var latencyToMs = map[string]float64{
	"nsec": 1e-6,
	"ns":   1e-6,
	"usec": 1e-3,
	"us":   1e-3,
	"msec": 1,
	"ms":   1,
	"sec":  1e3,
	"s":    1e3,
}

// bwRe extracts the first bandwidth token, e.g. "165MiB/s" out of
// "5486MiB/s (5752MB/s)".
var bwRe = regexp.MustCompile(`(?i)([0-9.]+)\s*([KMGT]?i?B)/s`)

// iopsRe extracts an IOPS figure with an optional k/m scale suffix,
// e.g. "84.4k" or "50221.53".
var iopsRe = regexp.MustCompile(`^([0-9.]+)\s*([kKmM]?)`)

// latRe extracts a latency value with an optional unit suffix.
var latRe = regexp.MustCompile(`(?i)^([0-9.]+)\s*(nsec|usec|msec|ns|us|ms|sec|s)?$`)

// BandwidthGBps normalizes a reported bandwidth value to decimal GB/s.
// The unit token's own byte count is honored (binary for KiB/MiB/GiB,
// decimal for kB/MB/GB) before dividing by 1e9.
func BandwidthGBps(val string) (float64, bool) {
	m := bwRe.FindStringSubmatch(val)
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	factor, ok := byteMultipliers[strings.ToLower(m[2])]
	if !ok {
		return 0, false
	}
	return num * factor / bytesPerGB, true
}

// KiBtoGBps converts a bare KiB/s figure (fio's bw_avg sample unit) to
// decimal GB/s.
func KiBtoGBps(val string) (float64, bool) {
	num, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false
	}
	return num * byteMultipliers["kib"] / bytesPerGB, true
}

// IOPS parses a reported IOPS figure into raw operations per second,
// honoring k/m scale suffixes.
func IOPS(val string) (float64, bool) {
	m := iopsRe.FindStringSubmatch(strings.TrimSpace(val))
	if m == nil || m[1] == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "k":
		num *= 1_000
	case "m":
		num *= 1_000_000
	}
	return num, true
}

// LatencyMs normalizes a latency value to milliseconds. A bare number is
// taken as microseconds, fio's unit for completion latency averages.
func LatencyMs(val string) (float64, bool) {
	m := latRe.FindStringSubmatch(strings.TrimSpace(val))
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = "usec"
	}
	factor, ok := latencyToMs[unit]
	if !ok {
		return 0, false
	}
	return num * factor, true
}
