package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("s3cret", "u-1", "ama.mensah", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ama.mensah", claims.Username)
}

func TestValidateTokenErrors(t *testing.T) {
	expired, err := GenerateToken("s3cret", "u-1", "kofi", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("s3cret", expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	good, err := GenerateToken("s3cret", "u-1", "kofi", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken("other", good)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("s3cret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tok, err := ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)
	_, err = ExtractTokenFromHeader("Basic xyz")
	assert.Error(t, err)
}
