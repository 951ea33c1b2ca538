// Package passwordhash wraps bcrypt credential hashing behind a small,
// explicit surface: hash on registration, verify on login.
package passwordhash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned by Hash when given an empty plaintext secret.
var ErrEmptySecret = errors.New("passwordhash: empty secret")

// Hasher produces and verifies salted bcrypt hashes. It is a value type with
// no mutable state, safe for concurrent use.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given work factor. Zero or negative selects
// bcrypt.DefaultCost (2^10 rounds); values outside the range bcrypt supports
// are clamped into it.
func New(cost int) Hasher {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return Hasher{cost: cost}
}

// Cost reports the configured work factor.
func (h Hasher) Cost() int { return h.cost }

// Hash returns a salted one-way hash of secret. Two calls with the same
// secret produce different hashes; Verify accepts any of them.
func (h Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	out, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether secret matches hash. A malformed hash verifies as
// false rather than failing loudly; the underlying comparison is
// constant-time over the derived key.
func (h Hasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
