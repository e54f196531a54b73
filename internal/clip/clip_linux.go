//go:build linux

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type linuxBackend struct{}

// New returns the Linux clipboard backend, or a headless no-op backend if
// the display environment is unavailable (e.g. a server without X11 or
// Wayland). clipboard.Init is called here rather than in init() so that CLI
// sub-commands that never construct a Backend don't log spurious warnings.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return linuxBackend{}
}

func (linuxBackend) Name() string { return "Linux clipboard" }

func (linuxBackend) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (linuxBackend) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

func (linuxBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (linuxBackend) WriteImage(pngBytes []byte) error {
	clipboard.Write(clipboard.FmtImage, pngBytes)
	return nil
}

func (linuxBackend) WriteFiles([]string) error { return ErrUnsupported }

func (linuxBackend) Close() {}
