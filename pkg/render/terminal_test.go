package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_ContainsMetrics(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(sampleSummary())

	assert.Contains(t, out, "randread4k")
	assert.Contains(t, out, "0.1049 GB/s")
	assert.Contains(t, out, "12.800 kIOPS")
	assert.Contains(t, out, "lat 2.500 ms")
	assert.Contains(t, out, "qd 32")
	assert.Contains(t, out, "clat 2.490 ms")
	assert.Contains(t, out, "RUN #1")
	assert.Contains(t, out, "1 entry skipped")
}

func TestTerminal_AlignsJobColumns(t *testing.T) {
	s := sampleSummary()
	long := s.Runs[0].Jobs[0]
	long.Name = "sequential_write_128k"
	s.Runs[0].Jobs = append(s.Runs[0].Jobs, long)

	out := NewTerminal(MonoTheme(), 100).Render(s)

	var cols []int
	for _, line := range strings.Split(out, "\n") {
		if idx := strings.Index(line, "GB/s"); idx >= 0 {
			cols = append(cols, idx)
		}
	}
	if len(cols) != 2 || cols[0] != cols[1] {
		t.Errorf("metric columns not aligned: %v\n%s", cols, out)
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"default", "orca", "mono"} {
		if got := ThemeByName(name); got.Name != name {
			t.Errorf("ThemeByName(%q).Name = %q", name, got.Name)
		}
	}
	if got := ThemeByName("nope"); got.Name != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", got.Name)
	}
}
