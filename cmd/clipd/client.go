package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"go.clipd.dev/clipd/internal/crypto"
	"go.clipd.dev/clipd/internal/imaging"
	"go.clipd.dev/clipd/internal/ipc"
	"go.clipd.dev/clipd/internal/message"
	"go.clipd.dev/clipd/internal/wire"
)

// dialAgent connects to the running agent's IPC socket, deriving the
// encryption key from --token when set.
func dialAgent(v *viper.Viper) (*wire.Conn, error) {
	var key *[32]byte
	if token := v.GetString("token"); token != "" {
		var err error
		key, err = crypto.DeriveKey(token)
		if err != nil {
			return nil, fmt.Errorf("key derivation: %w", err)
		}
	}

	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("no clipd agent on %s (is \"clipd run\" running?): %w", ipc.SocketPath(), err)
	}
	return wire.New(conn, key), nil
}

// request sends one command and decodes the reply, converting ERROR replies
// into Go errors.
func request(v *viper.Viper, msg *message.Message) (*message.Message, error) {
	c, err := dialAgent(v)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.WriteMsg(msg); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	reply, err := c.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	if err := reply.Err(); err != nil {
		return nil, err
	}
	return reply, nil
}

// readPayload pulls the command payload from stdin, encoding raw image bytes
// into the data-URI form the protocol carries.
func readPayload(asImage bool) (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty stdin")
	}
	if asImage {
		img, err := imaging.Decode(data)
		if err != nil {
			return "", fmt.Errorf("stdin is not a decodable image: %w", err)
		}
		pngBytes, err := imaging.EncodePNG(img)
		if err != nil {
			return "", err
		}
		return imaging.EncodeDataURI(pngBytes), nil
	}
	return string(data), nil
}
