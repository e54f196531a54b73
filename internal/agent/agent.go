// Package agent wires the clipboard monitor, the input watcher, the paste
// injector and the IPC server into the long-running background process. The
// presentation window is a separate process that attaches over IPC; the
// agent owns all clipboard and input-hook state.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.clipd.dev/clipd/internal/broker"
	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/export"
	"go.clipd.dev/clipd/internal/favorites"
	"go.clipd.dev/clipd/internal/hotkey"
	"go.clipd.dev/clipd/internal/inject"
	"go.clipd.dev/clipd/internal/message"
	"go.clipd.dev/clipd/internal/monitor"
	"go.clipd.dev/clipd/internal/wire"
)

// Config collects the knobs the run command exposes.
type Config struct {
	Version      string
	Key          *[32]byte // nil disables IPC encryption
	PollInterval time.Duration
	TapWindowMS  int64
	Retries      int
	Backoff      time.Duration
	Settle       time.Duration
	OutputDir    string
	NoHook       bool
	NoMonitor    bool
}

// Agent is the composition root.
type Agent struct {
	cfg       Config
	backend   clip.Backend
	broker    *broker.Broker
	monitor   *monitor.Monitor
	watcher   hotkey.Watcher
	presenter *presenter
	injector  *inject.Injector
	saver     *export.Saver
	favStore  *favorites.Store

	startedAt time.Time
	pastes    atomic.Int64
	saves     atomic.Int64

	mu   sync.Mutex
	subs map[string]*ipcSubscriber
}

// New assembles an agent from the platform backend and a favorites store.
func New(backend clip.Backend, saver *export.Saver, favStore *favorites.Store, cfg Config) *Agent {
	a := &Agent{
		cfg:       cfg,
		backend:   backend,
		broker:    broker.New(),
		saver:     saver,
		favStore:  favStore,
		startedAt: time.Now(),
		subs:      make(map[string]*ipcSubscriber),
	}
	a.presenter = &presenter{notify: a.broadcast}

	a.watcher = hotkey.NewWatcher(a.presenter, hotkey.NewDetector(cfg.TapWindowMS))
	a.injector = inject.New(backend, a.presenter, a.watcher, inject.NewKeySender(),
		inject.WithRetries(cfg.Retries),
		inject.WithBackoff(cfg.Backoff),
		inject.WithSettle(cfg.Settle),
	)

	var monOpts []monitor.Option
	if cfg.PollInterval > 0 {
		monOpts = append(monOpts, monitor.WithInterval(cfg.PollInterval))
	}
	a.monitor = monitor.New(backend, a.broker, monOpts...)
	return a
}

// Run starts the monitor, the input watcher and the IPC accept loop, and
// blocks until ctx is cancelled. The listener is closed on the way out.
func (a *Agent) Run(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup

	if !a.cfg.NoMonitor {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.monitor.Run(ctx)
		}()
	}

	if !a.cfg.NoHook {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.watcher.Run(ctx); err != nil {
				slog.Error("input watcher failed", "err", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	slog.Info("agent listening", "addr", ln.Addr().String(), "version", a.cfg.Version)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			slog.Warn("accept failed", "err", err)
			continue
		}
		go a.handleConn(ctx, conn)
	}

	wg.Wait()
	slog.Info("agent stopped")
	return nil
}

// handleConn serves one IPC client: a command/reply loop that a SUBSCRIBE
// turns into a one-way event stream.
func (a *Agent) handleConn(ctx context.Context, nc net.Conn) {
	c := wire.New(nc, a.cfg.Key)
	defer c.Close()

	for {
		msg, err := c.ReadMsg()
		if err != nil {
			return
		}

		if msg.Type == message.TypeSubscribe {
			a.serveSubscriber(ctx, c)
			return
		}

		reply := a.dispatch(msg)
		if err := c.WriteMsg(reply); err != nil {
			slog.Debug("reply write failed", "type", msg.Type, "err", err)
			return
		}
	}
}

// dispatch executes one command and builds its reply. Errors become ERROR
// replies; they are the client's problem, never fatal to the agent.
func (a *Agent) dispatch(msg *message.Message) *message.Message {
	switch msg.Type {
	case message.TypeSetText:
		if err := a.injector.SetText(msg.Content); err != nil {
			return message.Errorf("set text: %v", err)
		}
		return message.OK()

	case message.TypeSetImage:
		if err := a.injector.SetImage(msg.Content); err != nil {
			return message.Errorf("set image: %v", err)
		}
		return message.OK()

	case message.TypePasteText:
		if err := a.injector.PasteText(msg.Content); err != nil {
			return message.Errorf("paste text: %v", err)
		}
		a.pastes.Add(1)
		return message.OK()

	case message.TypePasteImage:
		if err := a.injector.PasteImage(msg.Content); err != nil {
			return message.Errorf("paste image: %v", err)
		}
		a.pastes.Add(1)
		return message.OK()

	case message.TypeSaveImage:
		a.presenter.Hide()
		path, err := a.saver.Save(msg.Content, a.watcher.LastForeground())
		if err != nil {
			return message.Errorf("save image: %v", err)
		}
		a.saves.Add(1)
		return &message.Message{Type: message.TypeOK, Path: path}

	case message.TypeToggle:
		a.presenter.Toggle()
		return message.OK()

	case message.TypeStatus:
		return &message.Message{Type: message.TypeStatusResponse, Stats: a.stats()}

	case message.TypeFavoritesLoad:
		st, err := a.favStore.Load()
		if err != nil {
			return message.Errorf("load favorites: %v", err)
		}
		raw, err := json.Marshal(st)
		if err != nil {
			return message.Errorf("encode favorites: %v", err)
		}
		return &message.Message{Type: message.TypeFavorites, Favorites: raw}

	case message.TypeFavoritesSave:
		var st favorites.State
		if err := json.Unmarshal(msg.Favorites, &st); err != nil {
			return message.Errorf("parse favorites: %v", err)
		}
		if err := a.favStore.Save(st); err != nil {
			return message.Errorf("save favorites: %v", err)
		}
		return message.OK()

	default:
		return message.Errorf("unknown command %q", msg.Type)
	}
}

func (a *Agent) stats() *message.Stats {
	texts, images := a.broker.Counts()
	return &message.Stats{
		Version:     a.cfg.Version,
		Backend:     a.backend.Name(),
		StartedAt:   a.startedAt,
		TextEvents:  texts,
		ImageEvents: images,
		Pastes:      a.pastes.Load(),
		Saves:       a.saves.Load(),
	}
}

// broadcast pushes a control message to every attached subscriber.
func (a *Agent) broadcast(msg *message.Message) {
	a.mu.Lock()
	targets := make([]*ipcSubscriber, 0, len(a.subs))
	for _, s := range a.subs {
		targets = append(targets, s)
	}
	a.mu.Unlock()

	for _, s := range targets {
		s.SendMsg(msg)
	}
}

func (a *Agent) addSubscriber(s *ipcSubscriber) {
	a.mu.Lock()
	a.subs[s.id] = s
	a.mu.Unlock()
	a.broker.Subscribe(s)
}

func (a *Agent) removeSubscriber(s *ipcSubscriber) {
	a.broker.Unsubscribe(s)
	a.mu.Lock()
	delete(a.subs, s.id)
	a.mu.Unlock()
}
