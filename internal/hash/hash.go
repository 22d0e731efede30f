// Package hash wraps bcrypt password hashing and verification.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt reads at most 72 bytes of input; GenerateFromPassword rejects
// anything longer. Passwords past that length are truncated so the full
// accepted range (up to 100 chars) hashes and verifies consistently.
const maxPasswordBytes = 72

// Hasher produces and checks salted bcrypt hashes.
type Hasher struct {
	cost int
}

// New creates a Hasher with the given bcrypt cost. Costs outside bcrypt's
// supported range fall back to the default cost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted one-way hash of password. Output differs across calls
// for the same input because bcrypt embeds a random salt.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the encoded hash.
func (h *Hasher) Verify(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
