package blog

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 12: deliberately expensive so a leaked record resists offline
// brute force.
const bcryptCost = 12

// HashPassword derives a salted credential hash from a raw password.
func HashPassword(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPasswordAgainst checks a raw password against a stored hash.
// bcrypt's own compare primitive is constant-time. Any mismatch, empty hash
// or malformed hash is reported as false, never as an error - callers only
// need a yes/no answer and must not learn why verification failed.
func VerifyPasswordAgainst(storedHash, raw string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}
