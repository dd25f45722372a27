// Package version carries build-time identification, set via -ldflags.
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the version line logged at startup.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
