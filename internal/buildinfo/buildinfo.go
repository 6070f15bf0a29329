// SPDX-License-Identifier: MIT

// Package buildinfo carries the version stamped into the coda binary.
//
//	go build -ldflags "-X github.com/katalvlaran/coda/internal/buildinfo.Version=v0.3.0 \
//	    -X github.com/katalvlaran/coda/internal/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/katalvlaran/coda/internal/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set by -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the three fields on separate lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template of the root command.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
