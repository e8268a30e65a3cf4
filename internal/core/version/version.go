// Package version reports the build stamped into the binary
package version

import "runtime/debug"

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Set at link time:
//
//	-ldflags "-X 'textprep/internal/core/version.version=v0.1.0' -X 'textprep/internal/core/version.commit=abcd'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service. A missing commit falls
// back to the VCS stamp of the Go toolchain
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "none" && len(s.Value) >= 7:
				bi.Commit = s.Value[:7]
			case s.Key == "vcs.time" && bi.Date == "unknown":
				bi.Date = s.Value
			}
		}
	}
	return bi
}
