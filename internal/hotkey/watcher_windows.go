//go:build windows

package hotkey

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetCursorPos        = user32.NewProc("GetCursorPos")

	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13

	wmKeyUp    = 0x0101
	wmSysKeyUp = 0x0105
	wmQuit     = 0x0012

	vkLControl = 0xA2
	vkRControl = 0xA3
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type point struct {
	X, Y int32
}

// activeWatcher is the watcher the hook callback routes to. A low-level hook
// callback has no user context parameter, and windows.NewCallback allows
// only a bounded number of callbacks per process, so the trampoline is
// created once and dispatches through this pointer.
var activeWatcher atomic.Pointer[winWatcher]

var (
	hookProcOnce sync.Once
	hookProcPtr  uintptr
)

func hookProc() uintptr {
	hookProcOnce.Do(func() {
		hookProcPtr = windows.NewCallback(func(nCode, wParam, lParam uintptr) uintptr {
			if nCode == 0 && (wParam == wmKeyUp || wParam == wmSysKeyUp) {
				kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
				if kb.VkCode == vkLControl || kb.VkCode == vkRControl {
					if w := activeWatcher.Load(); w != nil {
						if w.detector.Release(time.Now().UnixMilli()) {
							// The toggle touches window state and must not run
							// on the hook thread; the callback has to return
							// to the input pipeline within milliseconds.
							go w.toggle()
						}
					}
				}
			}
			ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
			return ret
		})
	})
	return hookProcPtr
}

type winWatcher struct {
	presenter Presenter
	detector  *Detector

	// lastForeground is the handle captured when the presentation window was
	// last shown. Written only from toggle(), read from paste/save command
	// goroutines — atomic, never locked.
	lastForeground atomic.Uintptr
}

// NewWatcher returns the Windows input watcher.
func NewWatcher(p Presenter, d *Detector) Watcher {
	return &winWatcher{presenter: p, detector: d}
}

// Run installs the WH_KEYBOARD_LL hook and pumps messages until ctx is
// cancelled. The hook lives on this goroutine's OS thread, so the thread is
// locked for the duration and the hook is removed on the same thread.
func (w *winWatcher) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !activeWatcher.CompareAndSwap(nil, w) {
		return fmt.Errorf("hotkey: watcher already running")
	}
	defer activeWatcher.Store(nil)

	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookProc(), 0, 0)
	if hook == 0 {
		return fmt.Errorf("hotkey: SetWindowsHookEx: %w", err)
	}
	defer procUnhookWindowsHookEx.Call(hook)

	tid, _, _ := procGetCurrentThreadId.Call()
	slog.Info("input watcher started", "hook", "WH_KEYBOARD_LL", "thread", tid)

	// GetMessage blocks, so the cancellation path posts WM_QUIT at the pump
	// from a helper goroutine.
	go func() {
		<-ctx.Done()
		procPostThreadMessageW.Call(tid, wmQuit, 0, 0)
	}()

	var msg [12]uintptr // MSG is opaque to us; the hook does the work
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg[0])), 0, 0, 0)
		if r == 0 || int32(r) == -1 { // WM_QUIT or error
			break
		}
	}

	slog.Info("input watcher stopped")
	return nil
}

// toggle flips the presentation window. Hiding is unconditional; showing
// first captures the foreground window handle so focus can be handed back,
// then places the window at the pointer.
func (w *winWatcher) toggle() {
	if w.presenter.Visible() {
		w.presenter.Hide()
		return
	}

	fg, _, _ := procGetForegroundWindow.Call()
	w.lastForeground.Store(fg)

	var pt point
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	w.presenter.ShowAt(int(pt.X), int(pt.Y))
}

func (w *winWatcher) LastForeground() uintptr {
	return w.lastForeground.Load()
}

func (w *winWatcher) FocusLastForeground() {
	h := w.lastForeground.Load()
	if h == 0 {
		return
	}
	if r, _, err := procSetForegroundWindow.Call(h); r == 0 {
		slog.Warn("focus restore failed", "hwnd", h, "err", err)
	}
}
