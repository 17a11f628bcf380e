package cli

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const appURL = "https://github.com/babarot/trashcan"

// Version is stamped by the build; unset fields fall back to the
// module and VCS information embedded by the go command
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

func unset(s string) bool {
	switch s {
	case "", "unset", "unknown", "develop":
		return true
	}
	return false
}

// resolve fills unset fields from info
func (v Version) resolve(info *debug.BuildInfo) Version {
	if info == nil {
		return v
	}
	if unset(v.Version) && info.Main.Version != "" {
		v.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch {
		case setting.Key == "vcs.revision" && unset(v.Revision):
			v.Revision = setting.Value
		case setting.Key == "vcs.time" && unset(v.BuildDate):
			v.BuildDate = setting.Value
		}
	}
	return v
}

func (v Version) Print() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		v = v.resolve(info)
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s - a CLI for the freedesktop.org trash\n", v.AppName)
	fmt.Fprintf(&s, "%s\n\n", appURL)
	fmt.Fprintf(&s, "version: %s\n", v.Version)
	fmt.Fprintf(&s, "revision: %s\n", v.Revision)
	fmt.Fprintf(&s, "buildDate: %s\n", v.BuildDate)
	return s.String()
}
