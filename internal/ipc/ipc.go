// Package ipc provides the local socket the clipd agent listens on and the
// CLI sub-commands (copy/paste/save/status/watch) dial.
//
// On Linux and macOS this is a Unix domain socket; on Windows a named pipe
// served through github.com/Microsoft/go-winio. The protocol on top is the
// newline-delimited JSON wire format from internal/wire.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate IPC endpoint. It can be
// overridden with the CLIPD_SOCKET environment variable.
func SocketPath() string {
	if s := os.Getenv("CLIPD_SOCKET"); s != "" {
		return s
	}
	return defaultSocketPath()
}

// IsRunning reports whether a clipd agent appears to be listening on the IPC
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates the IPC listener, removing any stale endpoint first.
func Listen() (net.Listener, error) {
	return listenIPC(SocketPath())
}

// Dial connects to a running agent's IPC endpoint.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}
