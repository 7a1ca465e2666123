// Package buildinfo carries the version stamped in by the release build:
//
//	-ldflags "-X showcase/internal/buildinfo.Version=v1.2.0 -X showcase/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Title appends the build identifier to a window title.
func Title(title string) string {
	return fmt.Sprintf("%s (%s)", title, Short())
}

func String() string {
	return fmt.Sprintf("showcase %s (commit %s, built %s)", Version, Commit, Date)
}
