// Package consolidated splits multi-run consolidated benchmark files into
// per-run, per-report sections.
//
// A consolidated file is a concatenation of reports grouped by run:
//
//	~~~~~~~ RUN #1 ~~~~~~~
//	-- result_rand_read_4k.txt --
//	<report body>
//	-- result_seq_write_128k.txt --
//	<report body>
//	~~~~~~~ RUN #2 ~~~~~~~
//	...
package consolidated

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// RunDelimiterRe matches run delimiter lines. Canonical regex — used by
// both the section parser and format detection.
var RunDelimiterRe = regexp.MustCompile(`^~+\s*RUN #([0-9]+)\s*~+$`)

// nameDelimiterRe matches per-report header lines inside a run.
var nameDelimiterRe = regexp.MustCompile(`^-- (.+) --$`)

// Section is one report's body within a consolidated file.
type Section struct {
	Run  int    // run number from the enclosing RUN delimiter
	Name string // report name from the "-- name --" header
	Body []byte // raw body, either a fio report or a parsed key=value block
}

// Parse splits a consolidated file into sections. Body text before the
// first run delimiter or before a report header is discarded.
func Parse(data []byte) ([]Section, error) {
	data = trimTrailingNewline(data)
	lines := bytes.Split(data, []byte("\n"))

	var sections []Section
	var current *Section
	run := 0

	flush := func() {
		if current != nil {
			current.Body = trimTrailingNewline(current.Body)
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, line := range lines {
		if m := RunDelimiterRe.FindSubmatch(line); m != nil {
			flush()
			n, err := strconv.Atoi(string(m[1]))
			if err != nil {
				return nil, fmt.Errorf("bad run number %q: %w", m[1], err)
			}
			run = n
			continue
		}
		if m := nameDelimiterRe.FindSubmatch(line); m != nil {
			flush()
			if run == 0 {
				// Report header before any run delimiter; skip it.
				continue
			}
			current = &Section{Run: run, Name: string(bytes.TrimSpace(m[1]))}
			continue
		}
		if current != nil {
			current.Body = append(current.Body, line...)
			current.Body = append(current.Body, '\n')
		}
	}
	flush()

	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections found in consolidated input")
	}
	return sections, nil
}

// trimTrailingNewline removes exactly one trailing newline byte, if present.
func trimTrailingNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return b[:len(b)-1]
	}
	return b
}
