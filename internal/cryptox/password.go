// Package cryptox holds password hashing for internal users.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 16
	keyLen  = 32
)

// PasswordHash is an argon2id key together with the salt it was derived with.
type PasswordHash struct {
	Salt []byte
	Key  []byte
}

// readRandom is swapped in tests.
var readRandom = rand.Read

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keyLen)
}

// HashPassword derives a key from password with a fresh random salt.
func HashPassword(password string) (PasswordHash, error) {
	salt := make([]byte, saltLen)
	if _, err := readRandom(salt); err != nil {
		return PasswordHash{}, fmt.Errorf("generate salt: %w", err)
	}
	return PasswordHash{Salt: salt, Key: deriveKey([]byte(password), salt)}, nil
}

// Matches reports whether password derives to the stored key.
func (h PasswordHash) Matches(password string) bool {
	if len(h.Salt) == 0 || len(h.Key) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(deriveKey([]byte(password), h.Salt), h.Key) == 1
}
