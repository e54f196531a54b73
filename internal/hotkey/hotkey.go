// Package hotkey watches keyboard input system-wide for the double-tap
// gesture that toggles the presentation window, and remembers which window
// held focus so the paste injector can hand focus back.
//
// On Windows this is a WH_KEYBOARD_LL hook running its own message loop on a
// locked OS thread. The hook callback executes inside the system input
// pipeline: it must never block, and it must forward every event to the next
// handler whether or not it acted on it — swallowing events there breaks
// keyboard delivery for the whole machine, not just this process.
//
// Other platforms get a stub watcher; the gesture is a Windows-only feature,
// matching the platforms where the agent can also inject a paste into an
// arbitrary foreground window.
package hotkey

import "context"

// DefaultTapWindowMS is how close together two modifier releases must land,
// in milliseconds, to count as a double tap.
const DefaultTapWindowMS = 400

// Presenter is the agent's view of the presentation window. The real UI
// lives in a separate process; the agent only needs show/hide/position.
type Presenter interface {
	// Visible reports whether the window is currently shown.
	Visible() bool

	// Hide hides the window.
	Hide()

	// ShowAt positions the window at screen coordinates (x, y), shows it,
	// and gives it input focus.
	ShowAt(x, y int)
}

// Watcher observes global keyboard input and owns the remembered foreground
// window handle.
type Watcher interface {
	// Run installs the hook and dispatches events until ctx is cancelled.
	// Blocks; call in a goroutine.
	Run(ctx context.Context) error

	// LastForeground returns the handle of the window that held focus when
	// the presentation window was last shown, or 0.
	LastForeground() uintptr

	// FocusLastForeground asks the OS to return focus to the remembered
	// window. Best-effort: failure is logged, never returned — at worst the
	// subsequent paste keystroke lands on the wrong window.
	FocusLastForeground()
}
