//go:build darwin

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type darwinBackend struct{}

// New returns the macOS clipboard backend. clipboard.Init is called here
// rather than in init() so that CLI sub-commands that never construct a
// Backend don't log spurious warnings.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return darwinBackend{}
}

func (darwinBackend) Name() string { return "macOS NSPasteboard" }

func (darwinBackend) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (darwinBackend) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

func (darwinBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (darwinBackend) WriteImage(pngBytes []byte) error {
	clipboard.Write(clipboard.FmtImage, pngBytes)
	return nil
}

func (darwinBackend) WriteFiles([]string) error { return ErrUnsupported }

func (darwinBackend) Close() {}
