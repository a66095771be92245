// Package detect sniffs stdin to determine the input format.
package detect

import (
	"bytes"

	"github.com/mstern/fiolens/pkg/consolidated"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown      Format = iota
	Consolidated        // multi-run file with RUN delimiters
	ParsedRecord        // serialized "key = value" record block
	RawReport           // fio human-readable report
)

// Sniff examines a leading sample of the input to determine its format.
// A run delimiter anywhere in the sample wins: consolidated files embed
// whole reports or record blocks, so the delimiter is the only reliable
// discriminator. A fio banner or job header marks a raw report; failing
// both, a sample of "key = value" lines is a parsed record.
func Sniff(data []byte) Format {
	sawReport := false
	sawKV := false

	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if consolidated.RunDelimiterRe.Match(line) {
			return Consolidated
		}
		if isReportLine(line) {
			sawReport = true
		} else if bytes.Contains(line, []byte(" = ")) {
			sawKV = true
		}
	}

	switch {
	case sawReport:
		return RawReport
	case sawKV:
		return ParsedRecord
	default:
		return Unknown
	}
}

// isReportLine reports whether a line is unambiguously from a raw fio
// report: the version banner or a job header.
func isReportLine(line []byte) bool {
	if bytes.HasPrefix(line, []byte("fio-")) {
		return true
	}
	return bytes.Contains(line, []byte("rw=")) && bytes.Contains(line, []byte("ioengine="))
}
