package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := []byte(`[{"id":"x","name":"local","kind":"sqlite"}]`)

	ciphertext, err := encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptDecrypt_EmptyPlaintext(t *testing.T) {
	ciphertext, err := encrypt(nil)
	require.NoError(t, err)

	decrypted, err := decrypt(ciphertext)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestDecrypt_TamperedCiphertextFails(t *testing.T) {
	ciphertext, err := encrypt([]byte("hello"))
	require.NoError(t, err)

	tampered := append([]byte{}, ciphertext...)
	tampered[0] ^= 0xff

	_, err = decrypt(tampered)
	assert.Error(t, err)
}

func TestDecrypt_TruncatedCiphertextFails(t *testing.T) {
	_, err := decrypt([]byte{0x01, 0x02})
	assert.Error(t, err)
}
