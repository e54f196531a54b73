// Package broker fans clipboard-change events out to subscribers: the
// presentation layer's IPC connection and any `clipd watch` sessions. It is
// transport-agnostic — subscribers register, receive updates via a
// non-blocking Send, and the broker remembers the latest update so new
// subscribers are seeded immediately.
package broker

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"go.clipd.dev/clipd/internal/snapshot"
)

// Update is one clipboard change. Content is raw text for KindText and a
// base64 PNG data URI for KindImage.
type Update struct {
	Kind    snapshot.Kind
	Content string
}

// Subscriber is anything that can receive clipboard updates.
type Subscriber interface {
	ID() string
	// Send delivers an update. Must be non-blocking; a subscriber that
	// cannot keep up drops updates rather than stalling the publisher.
	Send(Update)
}

// Broker routes clipboard updates from the monitor to all subscribers.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]Subscriber
	latest *Update

	textEvents  atomic.Int64
	imageEvents atomic.Int64
}

// New returns an empty Broker.
func New() *Broker {
	return &Broker{subs: make(map[string]Subscriber)}
}

// Subscribe adds a subscriber and immediately delivers the latest update, if
// any, so a freshly attached presentation layer is seeded with the current
// clipboard.
func (b *Broker) Subscribe(s Subscriber) {
	b.mu.Lock()
	b.subs[s.ID()] = s
	latest := b.latest
	total := len(b.subs)
	b.mu.Unlock()

	slog.Info("subscriber attached", "id", s.ID(), "total", total)

	if latest != nil {
		s.Send(*latest)
	}
}

// Unsubscribe removes a subscriber.
func (b *Broker) Unsubscribe(s Subscriber) {
	b.mu.Lock()
	delete(b.subs, s.ID())
	total := len(b.subs)
	b.mu.Unlock()

	slog.Info("subscriber detached", "id", s.ID(), "total", total)
}

// Publish stores u as the latest update and fans it out to all subscribers.
func (b *Broker) Publish(u Update) {
	switch u.Kind {
	case snapshot.KindText:
		b.textEvents.Add(1)
	case snapshot.KindImage:
		b.imageEvents.Add(1)
	}

	b.mu.Lock()
	b.latest = &u
	targets := make([]Subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		targets = append(targets, s)
	}
	b.mu.Unlock()

	for _, s := range targets {
		s.Send(u)
	}
}

// Latest returns the most recent update, or nil if nothing has been observed.
func (b *Broker) Latest() *Update {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// Counts returns how many text and image events have been published.
func (b *Broker) Counts() (texts, images int64) {
	return b.textEvents.Load(), b.imageEvents.Load()
}
