package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := DeriveKey("a token")
	require.NoError(t, err)

	ct, err := Seal([]byte("payload"), key)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "payload")

	plain, err := Open(ct, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), plain)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1, err := DeriveKey("same")
	require.NoError(t, err)
	k2, err := DeriveKey("same")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := DeriveKey("different")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestOpen_WrongKey(t *testing.T) {
	k1, _ := DeriveKey("one")
	k2, _ := DeriveKey("two")

	ct, err := Seal([]byte("secret"), k1)
	require.NoError(t, err)

	_, err = Open(ct, k2)
	assert.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	key, _ := DeriveKey("tok")
	_, err := Open([]byte("short"), key)
	assert.ErrorContains(t, err, "too short")
}
