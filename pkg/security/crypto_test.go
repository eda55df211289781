package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triggr-io/triggr/pkg/apperr"
)

func TestNewKeyManagerRejectsWrongKeySize(t *testing.T) {
	_, err := NewKeyManager(make([]byte, 16))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Crypto))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	km, err := NewKeyManager(make([]byte, 32))
	require.NoError(t, err)

	for _, raw := range []string{"a", "api-key-with-special-chars-!@#$", "0123456789abcdef0123456789abcdef"} {
		enc, err := km.Encrypt(raw)
		require.NoError(t, err)
		assert.NotContains(t, enc, "/")

		got, err := km.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestEncryptRejectsEmpty(t *testing.T) {
	km, err := NewKeyManager(make([]byte, 32))
	require.NoError(t, err)

	_, err = km.Encrypt("")
	require.Error(t, err)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	key1 := make([]byte, 32)
	key2 := make([]byte, 32)
	key2[0] = 1

	km1, _ := NewKeyManager(key1)
	km2, _ := NewKeyManager(key2)

	enc, err := km1.Encrypt("top-secret")
	require.NoError(t, err)

	_, err = km2.Decrypt(enc)
	assert.Error(t, err)
}

func TestGenerateTokenLengthAndUniqueness(t *testing.T) {
	a, err := GenerateToken(32)
	require.NoError(t, err)
	b, err := GenerateToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "/")
	assert.NotContains(t, a, "=")
}

func TestNewUUIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewUUID(), NewUUID())
}
