package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost mirrors the work factor the service has always used for stored hashes.
const Cost = 10

var ErrEmptyPassword = errors.New("password must not be empty")

// Hash generates a salted bcrypt hash of the plaintext.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	return string(h), err
}

// Verify reports whether plaintext matches the stored hash. A malformed or
// truncated hash verifies as false rather than surfacing an error; callers
// only need the yes/no answer and must not leak why it was no.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
