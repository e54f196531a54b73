package agent

import (
	"log/slog"
	"sync/atomic"

	"go.clipd.dev/clipd/internal/message"
)

// presenter tracks the presentation window's visibility inside the agent and
// relays show/hide decisions to the UI process over the subscriber stream.
// The window itself lives out of process; the agent is the source of truth
// for whether it should be visible because the gesture and the paste
// protocol both need that state without a round trip.
type presenter struct {
	visible atomic.Bool
	notify  func(*message.Message)
}

func (p *presenter) Visible() bool { return p.visible.Load() }

func (p *presenter) Hide() {
	if !p.visible.Swap(false) {
		return
	}
	slog.Debug("presentation window hidden")
	p.notify(&message.Message{Type: message.TypeToggle, Content: "hide"})
}

func (p *presenter) ShowAt(x, y int) {
	p.visible.Store(true)
	slog.Debug("presentation window shown", "x", x, "y", y)
	p.notify(&message.Message{Type: message.TypeToggle, Content: "show", X: x, Y: y})
}

// Toggle serves the client-initiated TOGGLE command. A show lands at the
// UI's last position rather than the pointer, so no coordinates travel.
func (p *presenter) Toggle() {
	if p.visible.Load() {
		p.Hide()
		return
	}
	p.visible.Store(true)
	slog.Debug("presentation window shown")
	p.notify(&message.Message{Type: message.TypeToggle, Content: "show"})
}
