package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/ipc"
	"go.clipd.dev/clipd/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show agent status and counters",
		Long: `Queries the running agent over the IPC socket and prints its version,
clipboard backend, uptime and event counters.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	reply, err := request(v, &message.Message{Type: message.TypeStatus})
	if err != nil {
		return err
	}
	if reply.Stats == nil {
		return fmt.Errorf("malformed status reply")
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(reply.Stats, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printStats(reply.Stats)
	return nil
}

func printStats(s *message.Stats) {
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", s.Version)
	fmt.Fprintf(w, "Backend:\t%s\n", s.Backend)
	fmt.Fprintf(w, "Socket:\t%s\n", ipc.SocketPath())
	if !s.StartedAt.IsZero() {
		up := time.Since(s.StartedAt).Round(time.Second)
		fmt.Fprintf(w, "Started:\t%s (up %s)\n", s.StartedAt.UTC().Format(time.RFC3339), up)
	}
	fmt.Fprintf(w, "Text events:\t%d\n", s.TextEvents)
	fmt.Fprintf(w, "Image events:\t%d\n", s.ImageEvents)
	fmt.Fprintf(w, "Pastes:\t%d\n", s.Pastes)
	fmt.Fprintf(w, "Saves:\t%d\n", s.Saves)
	_ = w.Flush()
}
