// Package credentials abstracts how account passwords are stored and
// compared. PlainChecker keeps the exact-match behavior of a seeded admin
// directory; Argon2Checker derives a salted verifier and should be used for
// anything resembling a real deployment.
package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Checker turns a plaintext password into its stored form and verifies a
// candidate against a stored value. Implementations must be deterministic in
// Verify: the same (stored, candidate) pair always yields the same result.
type Checker interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// PlainChecker stores passwords as-is and compares by string equality.
type PlainChecker struct{}

func (PlainChecker) Hash(password string) (string, error) { return password, nil }

func (PlainChecker) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Argon2Checker stores an argon2id verifier encoded as "hexkey:hexsalt".
type Argon2Checker struct{}

func (Argon2Checker) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key) + ":" + hex.EncodeToString(salt), nil
}

func (Argon2Checker) Verify(stored, candidate string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}
	key, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	keyCandidate := argon2.IDKey([]byte(candidate), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(key, keyCandidate) == 1
}

// ForScheme returns the Checker for a config scheme name. Unknown names fall
// back to plain.
func ForScheme(scheme string) Checker {
	if scheme == "argon2" {
		return Argon2Checker{}
	}
	return PlainChecker{}
}
