package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize          = 128 / 8
	derivedKeySize    = 256 / 8
	credentialSep     = ":"
	minIterations     = 10000
	DefaultIterations = 100000
)

// PasswordHasher derives salted PBKDF2-HMAC-SHA256 credentials stored as
// base64(salt) ":" base64(key).
type PasswordHasher struct {
	iterations int
}

func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations < minIterations {
		iterations = minIterations
	}

	return &PasswordHasher{iterations: iterations}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := h.derive(password, salt)

	return base64.StdEncoding.EncodeToString(salt) + credentialSep + base64.StdEncoding.EncodeToString(key), nil
}

// Verify reports whether entered matches the stored credential. Malformed
// credentials never match.
func (h *PasswordHasher) Verify(entered string, stored string) bool {
	parts := strings.Split(stored, credentialSep)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(salt) != saltSize {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(expected) != derivedKeySize {
		return false
	}

	return subtle.ConstantTimeCompare(h.derive(entered, salt), expected) == 1
}

func (h *PasswordHasher) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, derivedKeySize, sha256.New)
}
