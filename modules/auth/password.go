package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost matches the cost of existing password hashes.
	DefaultBcryptCost = 10

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// ErrPasswordTooLong is returned when a password exceeds bcrypt's limit.
var ErrPasswordTooLong = errors.New("password must be at most 72 characters")

// PasswordHasher provides password hashing and verification functionality.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. Costs outside bcrypt's range use
// DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{
		cost: cost,
	}
}

// Hash generates a bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks if the provided password matches the hash. Passwords longer
// than MaxPasswordLength never match, since bcrypt would ignore the excess.
func (h *PasswordHasher) Verify(password, hash string) bool {
	if len(password) > MaxPasswordLength {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
