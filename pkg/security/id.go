package security

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/triggr-io/triggr/pkg/apperr"
)

// GenerateToken returns n cryptographically random bytes as a
// URL-safe, unpadded base64 string. Callers pick n (16 for a nonce,
// 32 for a project's raw API key — spec §4.10).
func GenerateToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", apperr.Wrap(apperr.Crypto, "failed to generate random token", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewUUID returns a random 128-bit id in canonical hyphenated form.
func NewUUID() string {
	return uuid.New().String()
}
