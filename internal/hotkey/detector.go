package hotkey

import "sync/atomic"

// Detector is the double-tap state machine. It holds one value: the
// timestamp of the previous qualifying key release (0 = idle). The hook
// callback is the only writer and reader, but the value is atomic because
// the callback runs on the hook thread while tests and diagnostics may peek
// from others — the hook path must never take a lock.
type Detector struct {
	windowMS int64
	last     atomic.Int64
}

// NewDetector returns a Detector that fires when two releases land within
// windowMS milliseconds.
func NewDetector(windowMS int64) *Detector {
	if windowMS <= 0 {
		windowMS = DefaultTapWindowMS
	}
	return &Detector{windowMS: windowMS}
}

// Release feeds one qualifying key-up at nowMS (epoch milliseconds) through
// the state machine. It reports true when the release completes a double
// tap, resetting to idle; otherwise the release arms the detector.
func (d *Detector) Release(nowMS int64) bool {
	last := d.last.Load()
	if last != 0 && nowMS-last < d.windowMS {
		d.last.Store(0)
		return true
	}
	d.last.Store(nowMS)
	return false
}
