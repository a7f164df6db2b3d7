package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedTokenRoundTrip(t *testing.T) {
	in := TokenClaims{ID: 42, Name: "Budi", Email: "budi@example.com"}
	tok, err := NewSignedToken("secret", in, 5*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(5*time.Minute), tok.Exp, 2*time.Second)

	out, err := ParseToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := NewSignedToken("secret", TokenClaims{ID: 1, Email: "a@b.c"}, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := NewSignedToken("secret", TokenClaims{ID: 1, Email: "a@b.c"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashRefreshRaw(t *testing.T) {
	h := HashRefreshRaw("token-value")
	assert.Len(t, h, 64, "sha-256 hex digest")
	assert.Equal(t, h, HashRefreshRaw("token-value"))
	assert.NotEqual(t, h, HashRefreshRaw("other-token"))
}
