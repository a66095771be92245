// Package fioparse parses fio's human-readable report output into flat
// key/value records.
package fioparse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// parseState tracks the two multi-line sections of a report. Everything
// else is classified line by line.
type parseState int

const (
	stateNormal parseState = iota
	statePercentiles
	stateDiskStats
)

var (
	reVersion = regexp.MustCompile(`^fio-([0-9.]+)`)
	reLayout  = regexp.MustCompile(`Laying out IO file.*\((\d+) files? / ([^)]+)\)`)

	// Group header, e.g. "randread4k: (groupid=0, jobs=1): err= 0: pid=2211: Tue Mar  5 10:12:01 2024"
	reGroupHeader = regexp.MustCompile(`(?i)^([A-Za-z0-9_.-]+): \(groupid=(\d+), jobs=(\d+)\):.*err=\s*([^:]+):\s*pid=(\d+):\s*(.+)$`)

	// Job header, e.g. "randread4k: (g=0): rw=randread, bs=(R) 4096B-4096B, (W) 4096B-4096B, (T) 4096B-4096B, ioengine=libaio, iodepth=32"
	reJobHeader = regexp.MustCompile(`(?i)^([A-Za-z0-9_.-]+):.*rw=([^,\s]+).*ioengine=([^,\s]+).*iodepth=(\d+)`)
	reBlockR    = regexp.MustCompile(`(?i)bs=\(R\)\s*([^,\s]+)`)
	reBlockW    = regexp.MustCompile(`(?i)\(W\)\s*([^,\s]+)`)
	reBlockT    = regexp.MustCompile(`(?i)\(T\)\s*([^,\s]+)`)

	// Comma-separated key=value sub-fields after a block label. The key
	// class admits ">=" so histogram bucket labels like ">=64" parse whole.
	reSubField = regexp.MustCompile(`([A-Za-z0-9._%/()>=-]+)=([^,]+)`)

	// Percentile table cell, e.g. "1.00th=[  359]".
	rePercentile = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?th)=\[\s*([^\]]+)\]`)

	// Disk stats device line, e.g. "sda: ios=102/40, ...".
	reDiskDevice = regexp.MustCompile(`^([A-Za-z0-9_-]+):\s*(.+)`)

	reIssued = regexp.MustCompile(`(total|short|dropped)=([^\s]+)`)
)

// blockRule routes a labeled statistic line to a key prefix. Rules are
// evaluated in order; the first matching label wins, which stands in for
// the cascading fallthrough the format otherwise invites.
type blockRule struct {
	label  string
	prefix string
}

var blockRules = []blockRule{
	{"read:", "read_"},
	{"write:", "write_"},
	{"slat", "slat_"},
	{"clat", "clat_"}, // percentile table header handled before this
	{"lat (usec)", "lat_usec_"},
	{"lat (msec)", "lat_msec_"},
	{"bw (", "bw_"},
	{"iops", "iops_"},
	{"cpu", "cpu_"},
	{"IO depths", "iodepth_dist_"},
	{"submit", "submit_"},
	{"complete", "complete_"},
	{"latency", "latency_cfg_"},
}

// Parse reads one fio report and returns its record. Unrecognized lines
// contribute nothing; the only error is a scanner failure.
func Parse(r io.Reader) (*Record, error) {
	rec := NewRecord()
	state := stateNormal

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		state = parseLine(rec, scanner.Text(), state)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	return rec, nil
}

// ParseBytes is a convenience for parsing from a byte slice.
func ParseBytes(data []byte) (*Record, error) {
	return Parse(strings.NewReader(string(data)))
}

// ParseString is a convenience for parsing from a string.
func ParseString(s string) (*Record, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(rec *Record, raw string, state parseState) parseState {
	line := strings.TrimSpace(raw)

	// A blank line terminates both multi-line sections.
	if line == "" {
		return stateNormal
	}

	if state == statePercentiles {
		if strings.HasPrefix(line, "|") || rePercentile.MatchString(line) {
			for _, m := range rePercentile.FindAllStringSubmatch(line, -1) {
				rec.Set("clat_pct_"+m[1], strings.TrimSpace(m[2]))
			}
			return statePercentiles
		}
		state = stateNormal
	}

	if m := reVersion.FindStringSubmatch(line); m != nil {
		rec.Set("fio_version", m[1])
		return state
	}

	if strings.Contains(line, "Laying out IO file") {
		if m := reLayout.FindStringSubmatch(line); m != nil {
			rec.Set("layout_files", m[1])
			rec.Set("layout_size", strings.TrimSpace(m[2]))
		}
		return state
	}

	if m := reGroupHeader.FindStringSubmatch(line); m != nil {
		rec.Set("job_name", m[1])
		rec.Set("groupid", m[2])
		rec.Set("jobs", m[3])
		rec.Set("err", strings.TrimSpace(m[4]))
		rec.Set("pid", m[5])
		rec.Set("timestamp", strings.TrimSpace(m[6]))
		return state
	}

	if m := reJobHeader.FindStringSubmatch(line); m != nil {
		rec.Set("job_name", m[1])
		rec.Set("rw", m[2])
		rec.Set("ioengine", m[3])
		rec.Set("iodepth", m[4])
		if bm := reBlockR.FindStringSubmatch(line); bm != nil {
			rec.Set("bs_r", bm[1])
		}
		if bm := reBlockW.FindStringSubmatch(line); bm != nil {
			rec.Set("bs_w", bm[1])
		}
		if bm := reBlockT.FindStringSubmatch(line); bm != nil {
			rec.Set("bs_t", bm[1])
		}
		return state
	}

	if strings.HasPrefix(strings.ToLower(line), "clat percentiles") {
		return statePercentiles
	}

	if strings.HasPrefix(line, "READ:") {
		emitSubFields(rec, afterLabel(line), "run_read_")
		return state
	}
	if strings.HasPrefix(line, "WRITE:") {
		emitSubFields(rec, afterLabel(line), "run_write_")
		return state
	}

	if strings.Contains(line, "issued rwts") {
		for _, m := range reIssued.FindAllStringSubmatch(line, -1) {
			rec.Set("issued_"+m[1], strings.TrimRight(m[2], ","))
		}
		return state
	}

	if strings.Contains(line, "Disk stats") {
		return stateDiskStats
	}

	if state == stateDiskStats {
		if m := reDiskDevice.FindStringSubmatch(line); m != nil {
			emitDiskFields(rec, m[1], m[2])
		}
		return stateDiskStats
	}

	for _, rule := range blockRules {
		if strings.HasPrefix(line, rule.label) {
			emitSubFields(rec, afterLabel(line), rule.prefix)
			return state
		}
	}

	// Everything else is noise, by contract.
	return state
}

// afterLabel returns the portion of a labeled line after its first colon.
func afterLabel(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return rest
}

// emitSubFields splits a comma-separated key=value list and emits each
// pair under prefix. Pairs missing a key or a value are dropped.
func emitSubFields(rec *Record, rest, prefix string) {
	for _, m := range reSubField.FindAllStringSubmatch(rest, -1) {
		key := normalizeKey(m[1])
		value := strings.TrimSpace(m[2])
		if key == "" || value == "" {
			continue
		}
		rec.Set(prefix+key, value)
	}
}

// emitDiskFields emits one comma-separated field list for a device,
// embedding the device name in every key. Slash-separated values split
// into independent _read/_write fields.
func emitDiskFields(rec *Record, device, rest string) {
	for _, m := range reSubField.FindAllStringSubmatch(rest, -1) {
		key := normalizeKey(m[1])
		value := strings.TrimSpace(m[2])
		if key == "" || value == "" {
			continue
		}
		if left, right, ok := strings.Cut(value, "/"); ok {
			rec.Set(fmt.Sprintf("disk_%s_%s_read", device, key), strings.TrimSpace(left))
			rec.Set(fmt.Sprintf("disk_%s_%s_write", device, key), strings.TrimSpace(right))
			continue
		}
		rec.Set(fmt.Sprintf("disk_%s_%s", device, key), value)
	}
}

var reKeyJunk = regexp.MustCompile(`[^A-Za-z0-9_.\->=]`)

// normalizeKey converts a sub-field label to a safe metric name: parens
// removed, % and / spelled out, whitespace collapsed to underscores,
// lowercased. ">=64"-style histogram bucket labels survive intact.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ")", "")
	key = strings.ReplaceAll(key, "%", "pct")
	key = strings.ReplaceAll(key, "/", "_")
	key = strings.Join(strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ':'
	}), "_")
	key = reKeyJunk.ReplaceAllString(key, "")
	return strings.ToLower(key)
}
