// Package snapshot models what the monitor last observed on the clipboard
// and the rules that decide whether a fresh read counts as a change.
package snapshot

// Kind classifies clipboard content.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Tracker holds the monitor's dedupe state. It is owned by the poll loop and
// is not safe for concurrent use.
type Tracker struct {
	lastText string
	lastFP   uint64
	seenText bool
	seenImg  bool
}

// ObserveText reports whether text is a new clipboard value. An empty string
// is never a change — transient empty reads while another process holds the
// clipboard must not toggle the history. A genuine change clears the image
// fingerprint so the same image re-fires after intervening text.
func (t *Tracker) ObserveText(text string) bool {
	if text == "" {
		return false
	}
	if t.seenText && text == t.lastText {
		return false
	}
	t.lastText = text
	t.seenText = true
	t.lastFP = 0
	t.seenImg = false
	return true
}

// ObserveImage reports whether the fingerprint differs from the last observed
// image. A genuine change clears the remembered text.
func (t *Tracker) ObserveImage(fp uint64) bool {
	if t.seenImg && fp == t.lastFP {
		return false
	}
	t.lastFP = fp
	t.seenImg = true
	t.lastText = ""
	t.seenText = false
	return true
}
