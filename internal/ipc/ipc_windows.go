//go:build windows

package ipc

import (
	"net"

	"github.com/Microsoft/go-winio"
)

func defaultSocketPath() string { return `\\.\pipe\clipd` }

func listenIPC(path string) (net.Listener, error) {
	return winio.ListenPipe(path, nil)
}

func dialIPC(path string) (net.Conn, error) {
	return winio.DialPipe(path, nil)
}
