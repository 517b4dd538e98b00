package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost targets roughly 100ms per verification on current server
// hardware. Raising it invalidates nothing; existing hashes keep their
// original cost factor.
const bcryptCost = 12

// HashPassword generates a salted bcrypt hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// VerifyPassword reports whether plaintext matches the stored hash.
// Failure is just false: a malformed hash and a wrong password are
// indistinguishable to callers, which keeps login responses free of
// username-enumeration side channels.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
