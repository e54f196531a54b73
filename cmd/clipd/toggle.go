package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/message"
)

func newToggleCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle the history window",
		Long: `Flips the agent's presentation window state, exactly as the double-tap
gesture would. Attached subscribers receive the show/hide event.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := request(v, &message.Message{Type: message.TypeToggle})
			return err
		},
	}

	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}
