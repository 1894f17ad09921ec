// Package version carries the build identity stamped via -ldflags
// (-X github.com/hirepath/hirepath/internal/version.Version=...).
package version

// Version and Commit default to development values; release builds
// overwrite them at link time.
var (
	Version = "dev"
	Commit  = "unknown"
)
