// Package autostart registers the agent to launch at login using the
// platform's native mechanism: the HKCU Run key on Windows, an XDG autostart
// desktop entry on Linux, a LaunchAgent on macOS.
package autostart

import (
	"fmt"
	"os"
)

const appName = "clipd"

// ErrUnsupported is returned on platforms with no login-launch mechanism.
var ErrUnsupported = fmt.Errorf("autostart: not supported on this platform")

// execCommand returns the command line registered for login launch: the
// current binary running the agent.
func execCommand() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return exe, nil
}
