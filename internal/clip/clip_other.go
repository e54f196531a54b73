//go:build !darwin && !windows && !linux

package clip

// New returns the headless no-op backend on platforms without a system
// clipboard integration.
func New() Backend { return headlessBackend{} }
