package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted adaptive hash from a plaintext password.
// The narrow hash/verify pair keeps the hashing scheme swappable without
// touching any caller.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored digest.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
