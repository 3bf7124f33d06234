package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrNotConfigured = errors.New("no password configured")
	ErrInvalidHash   = errors.New("invalid password hash")
)

// Gate is the single login check in front of the calendar.
type Gate struct {
	Plain string
	Hash  string
}

func NewGate(plain, hash string) *Gate {
	return &Gate{Plain: plain, Hash: hash}
}

// Check prefers the plaintext secret when one is configured and only falls
// back to the hash otherwise.
func (g *Gate) Check(password string) (bool, error) {
	if g.Plain != "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(g.Plain)) == 1, nil
	}
	if g.Hash != "" {
		return VerifyPassword(password, g.Hash)
	}
	return false, ErrNotConfigured
}

func (g *Gate) Configured() bool {
	return g.Plain != "" || g.Hash != ""
}
