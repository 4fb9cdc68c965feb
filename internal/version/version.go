// Package version carries build-time version information.
package version

var (
	// Version is set at build time via -ldflags.
	Version = "dev"
	// Commit is the short commit hash, set at build time.
	Commit = ""
)

// GetInfo returns a printable version string.
func GetInfo() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
