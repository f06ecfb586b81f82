// Package cryptox implements the password-hashing discipline for stored
// credentials. Plaintext passwords never leave this package in any
// persistable form other than a salted bcrypt hash.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor applied to every new hash.
const hashCost = 10

// PasswordHasher abstracts the hashing algorithm so services can take a
// test double.
type PasswordHasher interface {
	// Hash generates a salted one-way hash from a plaintext password.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches a previously produced hash.
	Verify(plaintext string, hashed string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing error: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plaintext string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
