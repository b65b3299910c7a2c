package crypto

import (
	"encoding/base64"
	"errors"
	"os"
)

var (
	ErrMasterKeyNotSet  = errors.New("master key not set in environment")
	ErrInvalidMasterKey = errors.New("invalid master key: must be base64-encoded 32 bytes")
)

// TokenCipher encrypts third-party OAuth access tokens before they are
// written to the ad_connections table, so a database dump alone cannot be
// replayed against the ad platforms.
type TokenCipher struct {
	key []byte
}

// NewTokenCipher reads the master key from the MASTER_KEY environment
// variable (base64, 32 bytes).
func NewTokenCipher() (*TokenCipher, error) {
	encoded := os.Getenv("MASTER_KEY")
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidMasterKey
	}
	return &TokenCipher{key: key}, nil
}

// NewTokenCipherWithKey builds a cipher from an explicit key; used by tests.
func NewTokenCipherWithKey(key []byte) (*TokenCipher, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeySize
	}
	return &TokenCipher{key: key}, nil
}

func (c *TokenCipher) EncryptToken(token string) (string, error) {
	return Encrypt(token, c.key)
}

func (c *TokenCipher) DecryptToken(ciphertext string) (string, error) {
	return Decrypt(ciphertext, c.key)
}
