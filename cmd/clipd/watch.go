package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/message"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream clipboard changes to stdout",
		Long: `Subscribes to the agent's event stream and prints every clipboard
change as it happens. Text events print their content; image events print a
one-line summary unless --json is set, in which case every event is emitted
as a raw JSON line (including the full image data URI).

The first event is the current clipboard content, if any. Runs until
interrupted.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	cmd.Flags().Bool("json", false, "output events as JSON lines")
	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	c, err := dialAgent(v)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.WriteMsg(&message.Message{Type: message.TypeSubscribe}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	jsonOut := v.GetBool("json")
	for {
		ev, err := c.ReadMsg()
		if err != nil {
			return fmt.Errorf("stream: %w", err)
		}

		if jsonOut {
			enc, _ := json.Marshal(ev)
			fmt.Println(string(enc))
			continue
		}

		ts := time.Now().Format("15:04:05")
		switch {
		case ev.Type == message.TypeToggle:
			fmt.Printf("[%s] window %s\n", ts, ev.Content)
		case ev.Kind == message.KindImage:
			fmt.Printf("[%s] image (%d bytes as data URI)\n", ts, len(ev.Content))
		default:
			fmt.Printf("[%s] text: %s\n", ts, ev.Content)
		}
	}
}
