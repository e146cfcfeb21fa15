package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// CredentialService owns the one-way transformation of passwords into
// storable hashes and the generation of temporary passwords for new
// accounts. Hashes are bcrypt, so every credential carries its own salt.
type CredentialService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	GenerateTemporaryPassword(length int) (string, error)
}

type credentialService struct{}

func NewCredentialService() CredentialService {
	return &credentialService{}
}

func (s *credentialService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash. A
// malformed hash verifies as false rather than surfacing an error, so
// callers treat any failure uniformly as "wrong password".
func (s *credentialService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const temporaryPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*-_+="

func (s *credentialService) GenerateTemporaryPassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("temporary password length must be positive")
	}

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(temporaryPasswordCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate temporary password: %w", err)
		}
		password[i] = temporaryPasswordCharset[n.Int64()]
	}
	return string(password), nil
}
