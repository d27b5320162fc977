package strata

import (
	"fmt"
	"runtime"
)

var (
	// version, commit, and buildTime are set via ldflags during build by GoReleaser.
	// For development builds these keep their zero-value defaults.
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the git commit hash the binary was built from, or
// "unknown" for development builds.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown" for
// development builds.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version used to build the binary.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent string to use for outbound git transport
// requests.
func UserAgent() string {
	return fmt.Sprintf("strata/%s", version)
}

// BuildInfo returns a human-readable summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
