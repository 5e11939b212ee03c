package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost stays at the library default; raise it here if login latency
// budgets ever allow.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
