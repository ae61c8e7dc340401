package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinCredentialLength is the shortest account credential accepted for hashing.
const MinCredentialLength = 4

// ErrWeakCredential is returned for credentials shorter than MinCredentialLength.
var ErrWeakCredential = fmt.Errorf("credential must be at least %d characters", MinCredentialLength)

// HashCredential hashes an account credential with bcrypt.
func HashCredential(credential string) (string, error) {
	if len(credential) < MinCredentialLength {
		return "", ErrWeakCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// CheckCredential reports whether credential matches the stored bcrypt hash.
// An empty hash never matches.
func CheckCredential(credential, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)) == nil
}
