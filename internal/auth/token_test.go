package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	teamID := int64(3)
	token, exp, err := tm.GenerateToken(42, &teamID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	require.NotNil(t, claims.TeamID)
	assert.Equal(t, teamID, *claims.TeamID)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenWithoutTeam(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, _, err := tm.GenerateToken(7, nil)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.TeamID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 5).GenerateToken(1, nil)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 5).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	_, err := tm.ParseToken("not.a.token")
	require.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("senha", 4)
	require.NoError(t, err)
	require.NotEqual(t, "senha", hash)

	require.NoError(t, ComparePassword(hash, "senha"))
	require.Error(t, ComparePassword(hash, "outra"))
}
