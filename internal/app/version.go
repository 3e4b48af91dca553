package app

import (
	"runtime/debug"
	"sync"
)

// Version and Commit are overridden with -ldflags "-X" in release builds.
// When Commit is left unset, the VCS revision stamped by the go tool is used.
var (
	Version = "dev"
	Commit  = ""
)

var buildVersion = sync.OnceValue(func() string {
	return formatVersion(Version, Commit, readBuildInfo)
})

// BuildVersion reports the running binary's version, e.g. "1.2.0+3f2c1ab".
func BuildVersion() string { return buildVersion() }

func formatVersion(version, commit string, info func() (*debug.BuildInfo, bool)) string {
	if commit == "" {
		commit = vcsRevision(info)
	}
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return version + "+" + commit
}

func vcsRevision(info func() (*debug.BuildInfo, bool)) string {
	bi, ok := info()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func readBuildInfo() (*debug.BuildInfo, bool) { return debug.ReadBuildInfo() }
