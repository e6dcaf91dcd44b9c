// Package buildinfo holds the release metadata stamped into the binary.
//
// A release build sets all three values:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/tilesketch/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/tilesketch/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/tilesketch/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" \
//	    ./cmd/tilesketch
//
// Development builds report "dev".
package buildinfo

import "fmt"

// Stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the metadata as three "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template printed by --version.
func Template() string {
	return "{{.Name}} " + Version + " (" + Commit + ", built " + Date + ")\n"
}
