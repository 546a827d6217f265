// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for password hashing and verification and for
// filesystem operations shared by the storage and system layers.
package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from the plaintext password at the
// given cost. The resulting string embeds the cost and salt, so it is the
// only value that needs to be persisted.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
