package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey()

	ciphertext, err := Encrypt("EAACEdEose0cBA-access-token", key)
	require.NoError(t, err)
	assert.NotContains(t, ciphertext, "access-token")

	plaintext, err := Decrypt(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, "EAACEdEose0cBA-access-token", plaintext)
}

func TestEncryptRejectsBadKeySize(t *testing.T) {
	_, err := Encrypt("secret", []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = Decrypt("whatever", []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	ciphertext, err := Encrypt("secret", testKey())
	require.NoError(t, err)

	otherKey := testKey()
	otherKey[0] ^= 0xff
	_, err = Decrypt(ciphertext, otherKey)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptRejectsTruncatedCiphertext(t *testing.T) {
	_, err := Decrypt(base64.StdEncoding.EncodeToString([]byte("tiny")), testKey())
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestTokenCipherFromEnv(t *testing.T) {
	t.Setenv("MASTER_KEY", base64.StdEncoding.EncodeToString(testKey()))

	cipher, err := NewTokenCipher()
	require.NoError(t, err)

	encrypted, err := cipher.EncryptToken("tiktok-token")
	require.NoError(t, err)
	decrypted, err := cipher.DecryptToken(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "tiktok-token", decrypted)
}

func TestTokenCipherEnvValidation(t *testing.T) {
	t.Setenv("MASTER_KEY", "")
	_, err := NewTokenCipher()
	assert.ErrorIs(t, err, ErrMasterKeyNotSet)

	t.Setenv("MASTER_KEY", "not-base64!!!")
	_, err = NewTokenCipher()
	assert.ErrorIs(t, err, ErrInvalidMasterKey)

	t.Setenv("MASTER_KEY", base64.StdEncoding.EncodeToString([]byte("too-short")))
	_, err = NewTokenCipher()
	assert.ErrorIs(t, err, ErrInvalidMasterKey)
}
