// Package version provides build-time version information for the generator.
// Values are injected with -ldflags "-X hinglishgen/internal/version.Version=...".
package version

import "fmt"

var (
	// Version is the release version (e.g., git tag or "dev")
	Version = "dev"
	// Commit is the git commit hash
	Commit = "dev"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the version line printed by `hinglishgen version`
func String() string {
	return fmt.Sprintf("hinglishgen %s (commit %s, built %s)", Version, Commit, BuildTime)
}
