//go:build !windows && !linux && !darwin

package autostart

// IsEnabled always reports false here.
func IsEnabled() (bool, error) { return false, nil }

// Enable reports the platform gap.
func Enable() error { return ErrUnsupported }

// Disable reports the platform gap.
func Disable() error { return ErrUnsupported }
