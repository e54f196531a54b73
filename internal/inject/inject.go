// Package inject pushes a chosen history entry back onto the system
// clipboard and replays it into the application the user was using before
// invoking the tool.
//
// Both entry points share one protocol: hide the presentation window, write
// the clipboard (with bounded retry — the clipboard is OS-arbitrated and may
// be transiently held by any process, including whoever is reading the value
// we just published), hand focus back to the remembered window, wait for the
// focus handoff to settle, then synthesise a paste keystroke.
package inject

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/hotkey"
	"go.clipd.dev/clipd/internal/imaging"
)

// Defaults for the write-retry and focus-settle timings.
const (
	DefaultRetries = 8
	DefaultBackoff = 40 * time.Millisecond
	DefaultSettle  = 320 * time.Millisecond
)

// KeySender synthesises the paste chord through the OS input-injection
// facility: press modifier, press key, release key, release modifier.
type KeySender interface {
	SendPaste() error
}

// FocusRestorer hands OS foreground focus back to the window remembered by
// the input watcher. hotkey.Watcher satisfies this.
type FocusRestorer interface {
	FocusLastForeground()
}

// Injector owns the paste-injection protocol.
type Injector struct {
	backend   clip.Backend
	presenter hotkey.Presenter
	focus     FocusRestorer
	keys      KeySender

	retries int
	backoff time.Duration
	settle  time.Duration
	tmpDir  string

	// One paste at a time: a second command racing the first on the shared
	// clipboard would interleave write/focus/keystroke steps.
	mu sync.Mutex
}

// Option configures an Injector.
type Option func(*Injector)

// WithRetries overrides the clipboard write attempt count.
func WithRetries(n int) Option {
	return func(i *Injector) {
		if n > 0 {
			i.retries = n
		}
	}
}

// WithBackoff overrides the delay between write attempts.
func WithBackoff(d time.Duration) Option {
	return func(i *Injector) { i.backoff = d }
}

// WithSettle overrides the focus-handoff settle delay.
func WithSettle(d time.Duration) Option {
	return func(i *Injector) { i.settle = d }
}

// WithTempDir overrides where file-drop payloads are staged.
func WithTempDir(dir string) Option {
	return func(i *Injector) { i.tmpDir = dir }
}

// New builds an Injector around the platform backend, presenter, focus
// restorer and key sender.
func New(backend clip.Backend, p hotkey.Presenter, f FocusRestorer, k KeySender, opts ...Option) *Injector {
	i := &Injector{
		backend:   backend,
		presenter: p,
		focus:     f,
		keys:      k,
		retries:   DefaultRetries,
		backoff:   DefaultBackoff,
		settle:    DefaultSettle,
		tmpDir:    os.TempDir(),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// SetText writes text to the clipboard without injecting a keystroke.
func (i *Injector) SetText(text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.writeWithRetry(func() error { return i.backend.WriteText(text) })
}

// SetImage places an image on the clipboard without injecting a keystroke.
// Where the platform supports it the image is staged as a temporary PNG and
// published as a file-drop list, so a paste into a file-manager window
// materialises as a file; elsewhere it is written as bitmap data.
func (i *Injector) SetImage(dataURI string) error {
	img, err := imaging.DecodeDataURIImage(dataURI)
	if err != nil {
		return err
	}
	pngBytes, err := imaging.EncodePNG(img)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	path, err := i.stageTempPNG(pngBytes)
	if err != nil {
		return err
	}
	err = i.writeWithRetry(func() error { return i.backend.WriteFiles([]string{path}) })
	if errors.Is(err, clip.ErrUnsupported) {
		slog.Debug("file-drop clipboard format unavailable, writing bitmap")
		return i.writeWithRetry(func() error { return i.backend.WriteImage(pngBytes) })
	}
	return err
}

// PasteText replays text into the previously focused application.
func (i *Injector) PasteText(text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.presenter.Hide()

	if err := i.writeWithRetry(func() error { return i.backend.WriteText(text) }); err != nil {
		return err
	}
	return i.deliver()
}

// PasteImage replays an image into the previously focused application. The
// payload is validated and re-encoded before touching the clipboard; decode
// failures surface immediately and are never retried.
func (i *Injector) PasteImage(dataURI string) error {
	img, err := imaging.DecodeDataURIImage(dataURI)
	if err != nil {
		return err
	}
	pngBytes, err := imaging.EncodePNG(img)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.presenter.Hide()

	if err := i.writeWithRetry(func() error { return i.backend.WriteImage(pngBytes) }); err != nil {
		return err
	}
	return i.deliver()
}

// deliver restores focus, waits out the handoff, and sends the keystroke.
// Focus restoration is best-effort; the keystroke result is the caller's.
func (i *Injector) deliver() error {
	i.focus.FocusLastForeground()

	// Sending the chord before the target window truly owns focus would
	// deliver it to the wrong destination.
	time.Sleep(i.settle)

	if err := i.keys.SendPaste(); err != nil {
		return fmt.Errorf("paste keystroke: %w", err)
	}
	return nil
}

// writeWithRetry runs a clipboard write, retrying with a fixed backoff while
// the clipboard is contended. ErrUnsupported aborts immediately — retrying a
// capability miss can't help. All attempts failing returns the last error.
func (i *Injector) writeWithRetry(write func() error) error {
	var last error
	for attempt := 0; attempt < i.retries; attempt++ {
		last = write()
		if last == nil {
			return nil
		}
		if errors.Is(last, clip.ErrUnsupported) {
			return last
		}
		slog.Debug("clipboard write contended", "attempt", attempt+1, "err", last)
		time.Sleep(i.backoff)
	}
	return fmt.Errorf("clipboard write failed after %d attempts: %w", i.retries, last)
}

// stageTempPNG writes PNG bytes to a timestamped file for file-drop pastes.
func (i *Injector) stageTempPNG(pngBytes []byte) (string, error) {
	name := fmt.Sprintf("clipd_clipboard_%d.png", time.Now().UnixMilli())
	path := filepath.Join(i.tmpDir, name)
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		return "", fmt.Errorf("stage file-drop payload: %w", err)
	}
	return path, nil
}
