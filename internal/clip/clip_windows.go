//go:build windows

package clip

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.design/x/clipboard"
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
)

const (
	cfHDrop      = 15
	gmemMoveable = 0x0002

	// sizeof(DROPFILES): pFiles (4) + pt (8) + fNC (4) + fWide (4)
	dropFilesHeaderSize = 20
)

type windowsBackend struct{}

// New returns the Windows clipboard backend. Text and raster content go
// through golang.design/x/clipboard; file-drop lists are written directly as
// CF_HDROP, which x/clipboard does not model.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return windowsBackend{}
}

func (windowsBackend) Name() string { return "Windows clipboard" }

func (windowsBackend) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (windowsBackend) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

func (windowsBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (windowsBackend) WriteImage(pngBytes []byte) error {
	clipboard.Write(clipboard.FmtImage, pngBytes)
	return nil
}

// WriteFiles places a CF_HDROP file list on the clipboard: a DROPFILES
// header followed by each path as UTF-16, the whole list double-NUL
// terminated. Explorer materialises a paste of this as dropped files.
func (windowsBackend) WriteFiles(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("clip: empty file list")
	}

	var utf16List []uint16
	for _, p := range paths {
		wide, err := windows.UTF16FromString(p) // includes the trailing NUL
		if err != nil {
			return fmt.Errorf("clip: encode path %q: %w", p, err)
		}
		utf16List = append(utf16List, wide...)
	}
	utf16List = append(utf16List, 0) // list terminator

	total := dropFilesHeaderSize + len(utf16List)*2

	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		return fmt.Errorf("clip: OpenClipboard: %w", err)
	}
	defer procCloseClipboard.Call()

	if r, _, err = procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("clip: EmptyClipboard: %w", err)
	}

	hMem, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(total))
	if hMem == 0 {
		return fmt.Errorf("clip: GlobalAlloc: %w", err)
	}

	pMem, _, err := procGlobalLock.Call(hMem)
	if pMem == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("clip: GlobalLock: %w", err)
	}

	// DROPFILES header: pFiles = offset of the path list, fWide = TRUE.
	buf := unsafe.Slice((*byte)(unsafe.Pointer(pMem)), total)
	for i := range buf[:dropFilesHeaderSize] {
		buf[i] = 0
	}
	buf[0] = dropFilesHeaderSize
	buf[16] = 1 // fWide

	dst := unsafe.Slice((*uint16)(unsafe.Pointer(pMem+dropFilesHeaderSize)), len(utf16List))
	copy(dst, utf16List)

	procGlobalUnlock.Call(hMem)

	// On success the clipboard owns the memory; freeing it is only ours to
	// do when SetClipboardData rejects the handle.
	if r, _, err = procSetClipboardData.Call(cfHDrop, hMem); r == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("clip: SetClipboardData(CF_HDROP): %w", err)
	}
	return nil
}

func (windowsBackend) Close() {}
