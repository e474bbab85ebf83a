package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v0.3.0"
	if got, want := UserAgent(), "clickmap/v0.3.0 (+https://github.com/matzehuels/clickmap)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	for _, want := range []string{"{{.Name}}", Version, Commit, Date} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}
