// Package auth implements the two security primitives of the service:
// bcrypt password hashing and HS256 JWT issuance/verification.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and verifies plaintext passwords with bcrypt.
// Each hash carries its own random salt, so hashing the same input twice
// yields different strings.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside the valid bcrypt range fall back to the library default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted, versioned hash string for the given plaintext.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the given hash. A malformed hash
// verifies as false; it never produces an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
