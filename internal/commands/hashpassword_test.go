package commands

import (
	"bytes"
	"strings"
	"testing"

	"family-calendar/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFromPipe(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword(nil, strings.NewReader("sonnenblume\nsonnenblume\n"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	hash := strings.TrimSpace(stdout.String())
	ok, err := auth.VerifyPassword("sonnenblume", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPasswordEnvLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword([]string{"-env"}, strings.NewReader("a\na\n"), &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "APP_PASSWORD_HASH='$argon2id$"))
}

func TestHashPasswordMismatch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword(nil, strings.NewReader("eins\nzwei\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "do not match")
	assert.Empty(t, stdout.String())
}

func TestHashPasswordEmpty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword(nil, strings.NewReader("\n\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "cannot be empty")
}

func TestHashPasswordTruncatedInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword(nil, strings.NewReader("nur-einmal\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestHashPasswordBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := HashPassword([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, code)
}
