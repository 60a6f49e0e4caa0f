package pkg

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 14

// HashPassword returns the bcrypt hash of a user password, as stored in app_user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return BytesToString(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
