package auth_test

import (
	"testing"

	"family-calendar/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGatePlainPassword(t *testing.T) {
	gate := auth.NewGate("sonnenblume", "")

	ok, err := gate.Check("sonnenblume")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Check("Sonnenblume")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGatePlainWinsOverHash(t *testing.T) {
	hash, err := auth.HashPassword("hashed")
	require.NoError(t, err)
	gate := auth.NewGate("plain", hash)

	ok, err := gate.Check("hashed")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Check("plain")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGateArgon2Hash(t *testing.T) {
	hash, err := auth.HashPassword("geheim")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	gate := auth.NewGate("", hash)
	ok, err := gate.Check("geheim")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Check("falsch")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateBcryptHash(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	require.NoError(t, err)

	gate := auth.NewGate("", string(raw))
	ok, err := gate.Check("geheim")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Check("falsch")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateNotConfigured(t *testing.T) {
	gate := auth.NewGate("", "")
	assert.False(t, gate.Configured())

	ok, err := gate.Check("irgendwas")
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsUnknownScheme(t *testing.T) {
	_, err := auth.VerifyPassword("x", "md5:abcdef")
	assert.ErrorIs(t, err, auth.ErrInvalidHash)

	_, err = auth.VerifyPassword("x", "$argon2id$v=19$broken")
	assert.ErrorIs(t, err, auth.ErrInvalidHash)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := auth.HashPassword("gleich")
	require.NoError(t, err)
	second, err := auth.HashPassword("gleich")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
