// Package version holds build metadata, set with -ldflags -X at link time.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
