// Package buildinfo holds the version stamped into clickmap at link time:
//
//	go build -ldflags "-X github.com/matzehuels/clickmap/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/clickmap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/clickmap
package buildinfo

import "fmt"

// Set via -ldflags -X.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Homepage is sent in the User-Agent so site operators can identify the
// scraper.
const Homepage = "https://github.com/matzehuels/clickmap"

// UserAgent returns the default User-Agent for page requests,
// e.g. "clickmap/v0.3.0 (+https://github.com/matzehuels/clickmap)".
func UserAgent() string {
	return fmt.Sprintf("clickmap/%s (+%s)", Version, Homepage)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
