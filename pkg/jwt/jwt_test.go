package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("unit-test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "asha@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "asha@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one", time.Hour, time.Hour)
	verifier := NewJWTService("secret-two", time.Hour, time.Hour)

	pair, err := issuer.GenerateTokenPair(uuid.New(), "a@example.com", "user")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("unit-test-secret", -time.Minute, -time.Minute)

	pair, err := svc.GenerateTokenPair(uuid.New(), "a@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("unit-test-secret", time.Hour, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestClaimsClaimLookup(t *testing.T) {
	userID := uuid.New()
	claims := &Claims{UserID: userID, Email: "a@example.com", Role: "admin"}

	for name, want := range map[string]string{
		"userId": userID.String(),
		"email":  "a@example.com",
		"role":   "admin",
	} {
		got, ok := claims.Claim(name)
		require.True(t, ok, "claim %q", name)
		require.Equal(t, want, got)
	}

	_, ok := claims.Claim("department")
	require.False(t, ok, "unknown claim names resolve to nothing")

	_, ok = claims.Claim("sub")
	require.False(t, ok, "empty subject is not a match")
}
