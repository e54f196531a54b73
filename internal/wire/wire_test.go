package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipd.dev/clipd/internal/crypto"
	"go.clipd.dev/clipd/internal/message"
)

func roundTrip(t *testing.T, key *[32]byte) {
	t.Helper()

	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	wa := New(a, key)
	wb := New(b, key)

	sent := message.NewTextEvent("clipboard contents")
	go func() { _ = wa.WriteMsg(sent) }()

	got, err := wb.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, sent.Type, got.Type)
	assert.Equal(t, sent.Kind, got.Kind)
	assert.Equal(t, sent.Content, got.Content)
}

func TestRoundTrip_Plain(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTrip_Encrypted(t *testing.T) {
	key, err := crypto.DeriveKey("shared-token")
	require.NoError(t, err)
	roundTrip(t, key)
}

func TestReadMsg_WrongKey(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	k1, _ := crypto.DeriveKey("token-one")
	k2, _ := crypto.DeriveKey("token-two")

	go func() { _ = New(a, k1).WriteMsg(message.OK()) }()

	_, err := New(b, k2).ReadMsg()
	assert.ErrorContains(t, err, "decrypt")
}

func TestReadMsg_PlainReaderRejectsGarbage(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	go func() {
		_, _ = a.Write([]byte("not json at all\n"))
	}()

	_, err := New(b, nil).ReadMsg()
	assert.Error(t, err)
}
