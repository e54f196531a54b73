//go:build windows

package shellfolder

import (
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/sys/windows"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procGetAncestor = user32.NewProc("GetAncestor")
)

const (
	gaRoot = 2

	// S_FALSE from CoInitializeEx: the thread was already initialized.
	sFalse = 0x00000001
)

type winResolver struct{}

// New returns the Explorer-backed resolver.
func New() Resolver { return winResolver{} }

// Resolve walks the shell's open-window collection looking for an Explorer
// window whose top-level handle matches hwnd, and reads the folder path from
// its document. Every COM step can fail if Explorer is mid-navigation or the
// window closed; all failures resolve to "not a folder window".
func (winResolver) Resolve(hwnd uintptr) (string, bool) {
	if hwnd == 0 {
		return "", false
	}
	root, _, _ := procGetAncestor.Call(hwnd, gaRoot)
	if root == 0 {
		root = hwnd
	}

	// COM apartment state is per-thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			slog.Debug("CoInitializeEx failed", "err", err)
			return "", false
		}
	}
	defer ole.CoUninitialize()

	shell, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		slog.Debug("Shell.Application unavailable", "err", err)
		return "", false
	}
	defer shell.Release()

	disp, err := shell.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", false
	}
	defer disp.Release()

	windowsVar, err := oleutil.CallMethod(disp, "Windows")
	if err != nil {
		return "", false
	}
	coll := windowsVar.ToIDispatch()
	if coll == nil {
		return "", false
	}
	defer coll.Release()

	countVar, err := oleutil.GetProperty(coll, "Count")
	if err != nil {
		return "", false
	}
	count := int(countVar.Val)

	for i := 0; i < count; i++ {
		if path, ok := folderAt(coll, i, root); ok {
			return path, true
		}
	}
	return "", false
}

// folderAt inspects collection item i and returns its folder path when the
// item is an Explorer window rooted at want.
func folderAt(coll *ole.IDispatch, i int, want uintptr) (string, bool) {
	itemVar, err := oleutil.CallMethod(coll, "Item", i)
	if err != nil {
		return "", false
	}
	item := itemVar.ToIDispatch()
	if item == nil {
		return "", false
	}
	defer item.Release()

	hwndVar, err := oleutil.GetProperty(item, "HWND")
	if err != nil || uintptr(hwndVar.Val) != want {
		return "", false
	}

	docVar, err := oleutil.GetProperty(item, "Document")
	if err != nil {
		return "", false
	}
	doc := docVar.ToIDispatch()
	if doc == nil {
		return "", false
	}
	defer doc.Release()

	folderVar, err := oleutil.GetProperty(doc, "Folder")
	if err != nil {
		return "", false
	}
	folder := folderVar.ToIDispatch()
	if folder == nil {
		return "", false
	}
	defer folder.Release()

	selfVar, err := oleutil.GetProperty(folder, "Self")
	if err != nil {
		return "", false
	}
	self := selfVar.ToIDispatch()
	if self == nil {
		return "", false
	}
	defer self.Release()

	pathVar, err := oleutil.GetProperty(self, "Path")
	if err != nil {
		return "", false
	}
	path := pathVar.ToString()

	// Virtual folders (This PC, Control Panel) report shell GUIDs, not
	// filesystem paths.
	if path == "" || strings.HasPrefix(path, "::") {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return path, true
}
