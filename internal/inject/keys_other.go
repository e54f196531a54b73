//go:build !windows

package inject

import (
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"
)

func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}

type robotKeySender struct{}

// NewKeySender returns a robotgo-backed key sender. macOS uses Cmd+V,
// everything else Ctrl+V.
func NewKeySender() KeySender { return robotKeySender{} }

func (robotKeySender) SendPaste() error {
	mod := pasteModifier()
	if err := robotgo.KeyToggle(mod, "down"); err != nil {
		return fmt.Errorf("press %s: %w", mod, err)
	}
	defer robotgo.KeyToggle(mod, "up")
	if err := robotgo.KeyTap("v"); err != nil {
		return fmt.Errorf("tap v: %w", err)
	}
	return nil
}
