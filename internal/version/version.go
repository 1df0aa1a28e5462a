// Package version holds build metadata injected at link time.
package version

// Set via -ldflags "-X github.com/mandalnilabja/artgen/internal/version.Version=..."
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
