// Package shellfolder resolves the filesystem folder shown by the file
// manager window that held focus before the presentation window appeared.
// Resolution is best-effort on every platform: callers always have a
// fallback directory and treat "no folder" as a normal outcome.
package shellfolder

// Resolver maps a native window handle to the directory its file-manager
// view is showing.
type Resolver interface {
	// Resolve returns the folder path for the window rooted at hwnd and
	// true, or "" and false when the window is not a file-manager view or
	// the lookup fails for any reason.
	Resolve(hwnd uintptr) (string, bool)
}
