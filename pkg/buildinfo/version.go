// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/FabioUrbina/rdkit/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/FabioUrbina/rdkit/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/moldraw
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information as reported by the server.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope is the key prefix that keeps cache entries of different
// builds apart, since drawing changes between versions.
func CacheScope() string {
	if Version == "dev" {
		return "dev-" + Commit
	}
	return Version
}
