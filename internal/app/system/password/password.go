// Package password wraps bcrypt hashing for local credentials.
//
// The pair is side-effect free: Hash never reads stored state and Verify
// never writes it. Comparison is delegated to bcrypt, which is
// constant-time with respect to mismatch position.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when no cost is configured.
const DefaultCost = 12

// Hasher hashes and verifies passwords at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
