package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storage. Cost stays at the library
// default; raising it is a config concern, not a call-site one.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
