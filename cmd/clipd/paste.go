package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/message"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Paste stdin into the previously focused application",
		Long: `Reads stdin and asks the agent to inject it as a paste: the agent
writes the clipboard, returns focus to the window that was active before the
history window appeared, and sends a synthetic paste keystroke.

With --image, stdin must be a PNG or JPEG.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runPasteCmd(v) },
	}

	cmd.Flags().Bool("image", false, "treat stdin as image bytes")
	addTokenFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPasteCmd(v *viper.Viper) error {
	asImage := v.GetBool("image")
	content, err := readPayload(asImage)
	if err != nil {
		return err
	}

	msg := &message.Message{Type: message.TypePasteText, Content: content}
	if asImage {
		msg.Type = message.TypePasteImage
	}
	_, err = request(v, msg)
	return err
}
