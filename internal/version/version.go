// Package version exposes build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via ldflags
var (
	// Version is the semantic version, injected at build time
	Version = "dev"

	// GitCommit is the git commit hash, injected at build time
	GitCommit = "unknown"

	// BuildDate is the build date, injected at build time
	BuildDate = "unknown"
)

// Short returns the version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build information.
func Full() string {
	info := Version
	if GitCommit != "" && GitCommit != "unknown" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		info += fmt.Sprintf(" (%s)", commit)
	}
	return info
}

// BuildInfo returns a multi-line description for the version command.
func BuildInfo() string {
	return fmt.Sprintf("astropath %s\nbuild date: %s\ngo version: %s",
		Full(), BuildDate, runtime.Version())
}
