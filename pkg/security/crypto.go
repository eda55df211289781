package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
)

// KeyManager encrypts and decrypts API keys with AES-256-GCM using a
// single process-wide symmetric key (spec §4.10, TRIGGR_ENCRYPTION_KEY).
type KeyManager struct {
	key []byte // 32 bytes for AES-256
}

// NewKeyManager creates a KeyManager from a raw 256-bit key.
func NewKeyManager(key []byte) (*KeyManager, error) {
	if len(key) != 32 {
		return nil, apperr.New(apperr.Crypto, "encryption key must be 32 bytes for AES-256")
	}
	return &KeyManager{key: key}, nil
}

// Encrypt returns base64(nonce‖ciphertext‖tag) with '/' replaced by '_'
// so the result is URL-safe without a separate base64 alphabet.
func (km *KeyManager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperr.New(apperr.BadRequest, "cannot encrypt empty value")
	}

	gcm, err := km.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", apperr.Wrap(apperr.Crypto, "failed to generate nonce", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	encoded := base64.StdEncoding.EncodeToString(sealed)
	return strings.ReplaceAll(encoded, "/", "_"), nil
}

// Decrypt reverses Encrypt.
func (km *KeyManager) Decrypt(encoded string) (string, error) {
	restored := strings.ReplaceAll(encoded, "_", "/")
	sealed, err := base64.StdEncoding.DecodeString(restored)
	if err != nil {
		return "", apperr.Wrap(apperr.Crypto, "invalid encrypted value", err)
	}

	gcm, err := km.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return "", apperr.New(apperr.Crypto, "ciphertext too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.Crypto, "failed to decrypt", err)
	}

	return string(plaintext), nil
}

func (km *KeyManager) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(km.key)
	if err != nil {
		return nil, apperr.Wrap(apperr.Crypto, "failed to create cipher", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperr.Wrap(apperr.Crypto, "failed to create GCM", err)
	}
	return gcm, nil
}
