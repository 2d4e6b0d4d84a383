package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword one-way hashes a plaintext secret. bcrypt embeds a fresh random
// salt per call, so hashing the same secret twice yields different outputs.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password is the secret that produced hash.
// bcrypt compares in constant time over the full digest.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
