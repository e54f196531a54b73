package agent

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"go.clipd.dev/clipd/internal/broker"
	"go.clipd.dev/clipd/internal/message"
	"go.clipd.dev/clipd/internal/snapshot"
	"go.clipd.dev/clipd/internal/wire"
)

// subscriberBuffer bounds how many undelivered events a slow client can
// accumulate before the agent starts dropping for it.
const subscriberBuffer = 32

// ipcSubscriber adapts one SUBSCRIBE connection to the broker. Events are
// queued on a buffered channel and written by a dedicated goroutine so a
// stalled client never blocks the monitor.
type ipcSubscriber struct {
	id string
	ch chan *message.Message
}

func newIPCSubscriber() *ipcSubscriber {
	return &ipcSubscriber{
		id: uuid.NewString(),
		ch: make(chan *message.Message, subscriberBuffer),
	}
}

func (s *ipcSubscriber) ID() string { return s.id }

// Send implements broker.Subscriber.
func (s *ipcSubscriber) Send(u broker.Update) {
	var msg *message.Message
	if u.Kind == snapshot.KindImage {
		msg = message.NewImageEvent(u.Content)
	} else {
		msg = message.NewTextEvent(u.Content)
	}
	s.SendMsg(msg)
}

// SendMsg queues any message for delivery, dropping when the client is
// backed up.
func (s *ipcSubscriber) SendMsg(msg *message.Message) {
	select {
	case s.ch <- msg:
	default:
		slog.Warn("subscriber backed up, dropping event", "id", s.id, "type", msg.Type)
	}
}

// serveSubscriber turns c into an event stream until the client disconnects
// or ctx ends.
func (a *Agent) serveSubscriber(ctx context.Context, c *wire.Conn) {
	s := newIPCSubscriber()
	a.addSubscriber(s)
	defer a.removeSubscriber(s)

	// The read side only signals disconnect; subscribers don't send commands.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, err := c.ReadMsg(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-readDone:
			return
		case msg := <-s.ch:
			if err := c.WriteMsg(msg); err != nil {
				slog.Debug("subscriber write failed", "id", s.id, "err", err)
				return
			}
		}
	}
}
