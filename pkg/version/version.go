// Package version reports build information set via ldflags or read from the
// embedded VCS settings.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision()
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns [Version], or the VCS revision when it is not set.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Platform returns the OS/arch pair the binary was built for.
func Platform() string {
	return fmt.Sprintf("%s/%s", GoOS, GoArch)
}

func getRevision() string {
	rev := "dev"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value[:min(len(v.Value), 7)]
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
