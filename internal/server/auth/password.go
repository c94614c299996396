package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor for every stored password.
const PasswordHashCost = 10

// HashPassword returns a salted bcrypt digest of password. bcrypt rejects
// inputs longer than 72 bytes with an error.
func HashPassword(password string) (string, error) {
	return HashPasswordBytes([]byte(password))
}

// HashPasswordBytes is HashPassword for callers that wipe the plaintext
// buffer once it has been hashed.
func HashPasswordBytes(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt digest hash.
// A malformed digest simply does not match.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
