package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/agent"
	"go.clipd.dev/clipd/internal/clip"
	"go.clipd.dev/clipd/internal/crypto"
	"go.clipd.dev/clipd/internal/export"
	"go.clipd.dev/clipd/internal/favorites"
	"go.clipd.dev/clipd/internal/hotkey"
	"go.clipd.dev/clipd/internal/inject"
	"go.clipd.dev/clipd/internal/ipc"
	"go.clipd.dev/clipd/internal/monitor"
	"go.clipd.dev/clipd/internal/shellfolder"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard history agent",
		Long: `Starts the background agent: polls the system clipboard for changes,
watches for the double-tap gesture, and serves the local IPC socket that the
presentation window and the CLI tools connect to.

Config file search order:
  /etc/clipd/clipd.toml
  $HOME/.config/clipd/clipd.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPD_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runAgent(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", monitor.DefaultInterval, "clipboard poll cadence")
	f.Int64("tap-window", hotkey.DefaultTapWindowMS, "double-tap window in milliseconds")
	f.Int("paste-retries", inject.DefaultRetries, "clipboard write attempts before a paste fails")
	f.Duration("paste-backoff", inject.DefaultBackoff, "delay between clipboard write attempts")
	f.Duration("paste-settle", inject.DefaultSettle, "delay between focus restore and the paste keystroke")
	f.String("output-dir", "", "fallback directory for saved images (default: Downloads)")
	f.String("favorites-file", "", "path of the favorites document (default: user config dir)")
	f.Bool("no-hook", false, "disable the global input hook")
	f.Bool("no-monitor", false, "disable clipboard polling (serve commands only)")
	addTokenFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runAgent(v *viper.Viper) error {
	setupLogging(v)

	var key *[32]byte
	if token := v.GetString("token"); token != "" {
		var err error
		key, err = crypto.DeriveKey(token)
		if err != nil {
			return fmt.Errorf("key derivation: %w", err)
		}
	}

	if ipc.IsRunning() {
		return fmt.Errorf("another clipd agent is already listening on %s", ipc.SocketPath())
	}

	backend := clip.New()
	defer backend.Close()

	favPath := v.GetString("favorites-file")
	if favPath == "" {
		favPath = favorites.DefaultPath()
	}

	slog.Info("clipd agent starting",
		"version", Version,
		"backend", backend.Name(),
		"poll_interval", v.GetDuration("poll-interval"),
		"encrypted", key != nil,
	)

	a := agent.New(
		backend,
		export.New(shellfolder.New(), v.GetString("output-dir")),
		favorites.NewStore(favPath),
		agent.Config{
			Version:      Version,
			Key:          key,
			PollInterval: v.GetDuration("poll-interval"),
			TapWindowMS:  v.GetInt64("tap-window"),
			Retries:      v.GetInt("paste-retries"),
			Backoff:      v.GetDuration("paste-backoff"),
			Settle:       v.GetDuration("paste-settle"),
			OutputDir:    v.GetString("output-dir"),
			NoHook:       v.GetBool("no-hook"),
			NoMonitor:    v.GetBool("no-monitor"),
		},
	)

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("ipc listen: %w", err)
	}
	slog.Info("IPC socket listening", "path", ipc.SocketPath())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx, ln)
}
