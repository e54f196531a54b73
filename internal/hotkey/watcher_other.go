//go:build !windows

package hotkey

import (
	"context"
	"log/slog"
)

// stubWatcher stands in on platforms without a global keyboard hook. The
// gesture simply never fires; the presentation layer can still toggle via
// the TOGGLE command.
type stubWatcher struct{}

// NewWatcher returns a no-op watcher on this platform.
func NewWatcher(Presenter, *Detector) Watcher { return stubWatcher{} }

func (stubWatcher) Run(ctx context.Context) error {
	slog.Info("global input hook not supported on this platform; double-tap gesture disabled")
	<-ctx.Done()
	return nil
}

func (stubWatcher) LastForeground() uintptr { return 0 }
func (stubWatcher) FocusLastForeground()    {}
