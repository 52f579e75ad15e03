// Package version reports the build stamp of the running binary
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service" example:"ballotbox-api"`
	Version string `json:"version" example:"v0.1.0"`
	Commit  string `json:"commit" example:"abcd123"`
	Date    string `json:"date" example:"2026-01-01"`
}

// Info returns the build information
// set with -ldflags "-X 'ballotbox/internal/core/version.version=v0.1.0' -X 'ballotbox/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	service = "ballotbox-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
