// Package clip provides a unified interface to the system clipboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_windows.go  — golang.design/x/clipboard + CF_HDROP file-drop writes
//	clip_darwin.go   — golang.design/x/clipboard (NSPasteboard underneath)
//	clip_linux.go    — golang.design/x/clipboard (X11/Wayland)
//	clip_other.go    — headless / container stub
//
// Absence of content is not an error: reads return zero values when the
// clipboard holds nothing of the requested format or another process is
// holding the clipboard open. The monitor treats that as "nothing this tick".
package clip

import "errors"

// ErrUnsupported is returned by operations a platform backend cannot perform,
// such as file-drop writes outside Windows.
var ErrUnsupported = errors.New("clip: not supported on this platform")

// errContended simulates transient clipboard contention in the Memory backend.
var errContended = errors.New("clip: clipboard busy")

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the clipboard's plain-text content, or "" when the
	// clipboard holds no text or is momentarily unreadable.
	ReadText() string

	// ReadImage returns the clipboard's raster content as PNG bytes, or nil
	// when the clipboard holds no image or is momentarily unreadable.
	ReadImage() []byte

	// WriteText places plain text on the clipboard.
	WriteText(text string) error

	// WriteImage places PNG-encoded raster data on the clipboard in the
	// platform's native bitmap representation.
	WriteImage(pngBytes []byte) error

	// WriteFiles places a file-drop list on the clipboard, so that a paste
	// into a file-manager window materialises as dropped files. Returns
	// ErrUnsupported where the platform has no such format.
	WriteFiles(paths []string) error

	// Close releases any resources held by the backend.
	Close()
}
