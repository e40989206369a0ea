// Package version carries the build provenance stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at link time via
// -ldflags "-X github.com/teranos/bindgen/version.Version=...". A plain
// `go build` keeps the dev defaults.
var (
	// Version is the release tag.
	Version = "dev"

	// CommitHash is the git commit the binary was built from.
	CommitHash = "dev"

	// BuildTime is when the binary was built.
	BuildTime = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get resolves the stamped variables together with the runtime facts.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line human form.
func (i Info) String() string {
	return fmt.Sprintf("bindgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
