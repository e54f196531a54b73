package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelease_DoubleTapWithinWindowFires(t *testing.T) {
	d := NewDetector(400)
	assert.False(t, d.Release(1000))
	assert.True(t, d.Release(1399)) // 399 ms later
}

func TestRelease_JustOutsideWindowReArms(t *testing.T) {
	d := NewDetector(400)
	assert.False(t, d.Release(1000))
	assert.False(t, d.Release(1401)) // 401 ms later: re-arm, no fire
	// The re-arm took effect: a tap close to the second release fires.
	assert.True(t, d.Release(1500))
}

func TestRelease_ResetsAfterFire(t *testing.T) {
	d := NewDetector(400)
	d.Release(1000)
	assert.True(t, d.Release(1100))
	// Back to idle: the next release must arm, not fire.
	assert.False(t, d.Release(1150))
}

func TestRelease_FirstEverReleaseNeverFires(t *testing.T) {
	d := NewDetector(400)
	assert.False(t, d.Release(5))
}

func TestNewDetector_DefaultWindow(t *testing.T) {
	d := NewDetector(0)
	assert.False(t, d.Release(1000))
	assert.True(t, d.Release(1000+DefaultTapWindowMS-1))
}
