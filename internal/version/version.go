// Package version holds georegion build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/georegion/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the one-line build description.
func String() string {
	return fmt.Sprintf("georegion %s (commit %s, built %s)", Version, Commit, Date)
}
