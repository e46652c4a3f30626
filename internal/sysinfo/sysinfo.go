// Package sysinfo captures the environment a task was logged from.
package sysinfo

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
)

// Info describes the machine and user a task was logged from
type Info struct {
	Hostname string
	Username string
	Platform string
}

// Capture gathers the current environment. Lookup failures degrade to
// "unknown" rather than failing the log write.
func Capture() Info {
	info := Info{
		Hostname: "unknown",
		Username: "unknown",
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		info.Hostname = host
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		info.Username = u.Username
	}
	return info
}

// String renders the info for the System Info column
func (i Info) String() string {
	return fmt.Sprintf("%s@%s (%s)", i.Username, i.Hostname, i.Platform)
}
