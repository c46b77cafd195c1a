package app

import "fmt"

// Set with -ldflags "-X github.com/heartmarshall/querycloud/internal/app.Version=..." at release.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is reported in the startup log and by GET /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
