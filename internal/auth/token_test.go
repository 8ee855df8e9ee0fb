package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(session.Session{ID: "abc", UserID: 7, Level: 2})
	require.NoError(t, err)

	id, userID, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, uint(7), userID)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	base := time.Now()
	tokens.now = func() time.Time { return base }

	raw, err := tokens.Issue(session.Session{ID: "abc", UserID: 7, Level: 2})
	require.NoError(t, err)

	tokens.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, _, err = tokens.Parse(raw)
	assert.Error(t, err)
}

func TestTokens_WrongSecret(t *testing.T) {
	raw, err := NewTokens("one", time.Hour).Issue(session.Session{ID: "abc", UserID: 7})
	require.NoError(t, err)

	_, _, err = NewTokens("two", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "Secret"))
}
