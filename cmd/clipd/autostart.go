package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.clipd.dev/clipd/internal/autostart"
)

func newAutostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launch-at-login registration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Register the agent to start at login",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return autostart.Enable()
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Remove the launch-at-login registration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return autostart.Disable()
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether launch-at-login is registered",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				on, err := autostart.IsEnabled()
				if err != nil {
					return err
				}
				if on {
					fmt.Println("enabled")
				} else {
					fmt.Println("disabled")
				}
				return nil
			},
		},
	)

	return cmd
}
