// Package version holds build metadata injected via -ldflags.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is the release version. Release tags must carry the same number.
// Override with -ldflags "-X github.com/mj1618/alwaysontop/internal/version.Version=1.0.3".
var Version = "1.0.2"

// Commit is the VCS revision the binary was built from.
var Commit = ""

// BuildDate is the build timestamp.
var BuildDate = "unknown"

// Revision returns Commit, falling back to the VCS revision in build info.
func Revision() string {
	if strings.TrimSpace(Commit) != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if ok {
		return revisionFromBuildInfo(info)
	}
	return "none"
}

func revisionFromBuildInfo(info *debug.BuildInfo) string {
	if info == nil {
		return "none"
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "none"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if modified {
		revision += "+dirty"
	}
	return revision
}
