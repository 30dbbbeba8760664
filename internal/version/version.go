// Package version exposes build-time version information.
package version

import "fmt"

// Set at build time using -ldflags.
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String formats the version with its build metadata.
func String() string {
	return fmt.Sprintf("piano-ledmap %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
