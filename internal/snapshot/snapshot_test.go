package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveText_EmittedOncePerValue(t *testing.T) {
	var tr Tracker
	assert.True(t, tr.ObserveText("a"))
	assert.False(t, tr.ObserveText("a"))
	assert.True(t, tr.ObserveText("b"))
	assert.False(t, tr.ObserveText("b"))
}

func TestObserveText_EmptyNeverChanges(t *testing.T) {
	var tr Tracker
	assert.False(t, tr.ObserveText(""))
	assert.True(t, tr.ObserveText("a"))
	assert.False(t, tr.ObserveText(""))
	// The empty read must not have disturbed the remembered value.
	assert.False(t, tr.ObserveText("a"))
}

func TestObserveImage_Dedupes(t *testing.T) {
	var tr Tracker
	assert.True(t, tr.ObserveImage(42))
	assert.False(t, tr.ObserveImage(42))
	assert.True(t, tr.ObserveImage(43))
}

func TestObserveImage_ZeroFingerprintIsValid(t *testing.T) {
	var tr Tracker
	assert.True(t, tr.ObserveImage(0))
	assert.False(t, tr.ObserveImage(0))
}

func TestAlternatingKindsAlwaysFire(t *testing.T) {
	var tr Tracker
	assert.True(t, tr.ObserveText("a"))
	assert.True(t, tr.ObserveImage(7))
	// Text cleared by the image observation: same string fires again.
	assert.True(t, tr.ObserveText("a"))
	// And the same image fires again after the text.
	assert.True(t, tr.ObserveImage(7))
}
