package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "alice", "AGENT", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "AGENT", claims.Role)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	good, err := NewAccessToken("secret", "alice", "AGENT", 15)
	require.NoError(t, err)
	expired, err := NewAccessToken("secret", "alice", "AGENT", -1)
	require.NoError(t, err)
	noSubject, err := NewAccessToken("secret", "", "AGENT", 15)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, AgentClaims{
		Role:             "AGENT",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"no subject":   {"secret", noSubject.Token},
		"alg none":     {"secret", unsigned},
		"garbage":      {"secret", "not.a.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccessToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword(hash, "hunter2"))
	assert.ErrorIs(t, VerifyPassword(hash, "hunter3"), ErrPasswordMismatch)
	assert.ErrorIs(t, VerifyPassword("not-a-hash", "hunter2"), ErrPasswordMismatch)
}
