package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/message"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Place stdin on the system clipboard via the agent (like pbcopy)",
		Long: `Reads stdin and asks the running agent to put it on the system
clipboard. With --image, stdin must be a PNG or JPEG; on platforms that
support it the image is published as a file drop, so pasting into a file
manager produces a file.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCopy(v) },
	}

	cmd.Flags().Bool("image", false, "treat stdin as image bytes")
	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runCopy(v *viper.Viper) error {
	asImage := v.GetBool("image")
	content, err := readPayload(asImage)
	if err != nil {
		return err
	}

	msg := &message.Message{Type: message.TypeSetText, Content: content}
	if asImage {
		msg.Type = message.TypeSetImage
	}
	_, err = request(v, msg)
	return err
}
