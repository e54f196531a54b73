//go:build windows

package inject

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard = 1

	keyEventFKeyUp = 0x0002

	vkControl = 0x11
	vkV       = 0x56
)

// keyboardInput mirrors KEYBDINPUT.
type keyboardInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors INPUT for the keyboard case. The union member is padded to
// the size of MOUSEINPUT, the largest variant.
type input struct {
	Type uint32
	_    uint32 // alignment before the union on 64-bit
	Ki   keyboardInput
	_    uint64 // pad to MOUSEINPUT size
}

type winKeySender struct{}

// NewKeySender returns the SendInput-backed key sender.
func NewKeySender() KeySender { return winKeySender{} }

// SendPaste injects Ctrl down, V down, V up, Ctrl up as one SendInput batch
// so no real keystroke can interleave with the chord.
func (winKeySender) SendPaste() error {
	events := []input{
		{Type: inputKeyboard, Ki: keyboardInput{WVk: vkControl}},
		{Type: inputKeyboard, Ki: keyboardInput{WVk: vkV}},
		{Type: inputKeyboard, Ki: keyboardInput{WVk: vkV, DwFlags: keyEventFKeyUp}},
		{Type: inputKeyboard, Ki: keyboardInput{WVk: vkControl, DwFlags: keyEventFKeyUp}},
	}
	n, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(events[0]),
	)
	if int(n) != len(events) {
		return fmt.Errorf("SendInput accepted %d of %d events: %w", n, len(events), err)
	}
	return nil
}
