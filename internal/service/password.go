// internal/service/password.go
package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher defines the one-way password hashing primitive and its
// verify counterpart. The rest of the service treats it as a black box.
type PasswordHasher interface {
	// HashPassword returns a salted hash of the clear-text password.
	HashPassword(password string) (string, error)
	// VerifyPassword reports whether the clear-text password matches the hash.
	VerifyPassword(password, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. Each call to
// HashPassword generates a fresh salt, so two hashes of the same password
// are never identical yet both verify.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// HashPassword hashes the clear-text password with a per-call salt.
func (h *BcryptHasher) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares the clear-text password against the stored hash.
func (h *BcryptHasher) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
