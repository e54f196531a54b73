package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/message"
)

func newSaveCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save an image from stdin to the focused folder",
		Long: `Reads image bytes from stdin and asks the agent to write them to disk
as a PNG. The destination is the folder shown by the file-manager window
that held focus before the history window appeared; when that can't be
determined the agent falls back to its configured output directory, then
Downloads. Prints the written path.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runSave(v) },
	}

	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runSave(v *viper.Viper) error {
	content, err := readPayload(true)
	if err != nil {
		return err
	}

	reply, err := request(v, &message.Message{Type: message.TypeSaveImage, Content: content})
	if err != nil {
		return err
	}
	fmt.Println(reply.Path)
	return nil
}
