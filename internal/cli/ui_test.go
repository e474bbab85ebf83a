package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	line := statsLine(12, 20, 3)
	for _, want := range []string{"12 nodes", "20 edges", "start", "3"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
}
