// Package monitor implements clipboard change detection. The OS offers no
// push notification the agent can rely on across platforms, so the monitor
// polls: every tick it tries a text read first, then an image read, and
// publishes an event when the observed content differs from the last
// snapshot.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"go.clipd.dev/clipd/internal/broker"
	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/imaging"
	"go.clipd.dev/clipd/internal/snapshot"
)

// DefaultInterval is the steady poll cadence.
const DefaultInterval = 500 * time.Millisecond

// Monitor polls the system clipboard and publishes change events.
type Monitor struct {
	backend  clip.Backend
	broker   *broker.Broker
	interval time.Duration
	tracker  snapshot.Tracker
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval overrides the poll cadence.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// New creates a Monitor publishing to b.
func New(backend clip.Backend, b *broker.Broker, opts ...Option) *Monitor {
	m := &Monitor{
		backend:  backend,
		broker:   b,
		interval: DefaultInterval,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Run polls until ctx is cancelled. One immediate pass runs before the
// steady cadence so the presentation layer is seeded with whatever is on the
// clipboard at startup. Blocks; call in a goroutine.
func (m *Monitor) Run(ctx context.Context) {
	slog.Info("clipboard monitor started",
		"backend", m.backend.Name(),
		"interval", m.interval,
	)

	m.tick()

	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("clipboard monitor stopped")
			return
		case <-t.C:
			m.tick()
		}
	}
}

// tick performs one observation pass. Text wins over image: the image read
// is only attempted when no text is present. Failed or empty reads mean
// "nothing of that kind this tick" — the clipboard routinely rejects reads
// while another process holds it, and that is not an error.
func (m *Monitor) tick() {
	if text := m.backend.ReadText(); text != "" {
		if m.tracker.ObserveText(text) {
			m.broker.Publish(broker.Update{Kind: snapshot.KindText, Content: text})
		}
		return
	}

	pngBytes := m.backend.ReadImage()
	if pngBytes == nil {
		return
	}

	img, err := imaging.Decode(pngBytes)
	if err != nil {
		slog.Debug("clipboard image undecodable, skipping tick", "err", err)
		return
	}

	if !m.tracker.ObserveImage(imaging.FingerprintImage(img)) {
		return
	}

	// Re-encode the raster into a self-contained PNG so every emitted image
	// is normalised regardless of what the source application posted.
	out, err := imaging.EncodePNG(img)
	if err != nil {
		slog.Warn("clipboard image re-encode failed", "err", err)
		return
	}
	m.broker.Publish(broker.Update{
		Kind:    snapshot.KindImage,
		Content: imaging.EncodeDataURI(out),
	})
}
