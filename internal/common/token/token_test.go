package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", "cantine-backend", time.Hour)

	signed, err := m.Generate("user-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := NewManager("test-secret", "cantine-backend", time.Hour)
	other := NewManager("other-secret", "cantine-backend", time.Hour)

	signed, err := m.Generate("user-1", false)
	require.NoError(t, err)

	_, err = other.Parse(signed)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	m := NewManager("test-secret", "cantine-backend", time.Hour)
	other := NewManager("test-secret", "someone-else", time.Hour)

	signed, err := other.Generate("user-1", false)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", "cantine-backend", -time.Minute)

	signed, err := m.Generate("user-1", false)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", "cantine-backend", time.Hour)

	_, err := m.Parse("not-a-token")
	require.Error(t, err)
}
