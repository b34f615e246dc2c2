package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-import/backend/internal/types"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "koch", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "koch", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	expired, err := svc.GenerateToken(userID, "koch", -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewTokenService("other-secret").GenerateToken(userID, "koch", time.Hour)
	require.NoError(t, err)

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{UserID: userID}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":     expired,
		"wrong key":   otherKey,
		"HS512":       hs512,
		"alg none":    unsigned,
		"no expiry":   noExpiry,
		"no user":     noUser,
		"garbage":     "not.a.token",
		"empty token": "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_NoSecret(t *testing.T) {
	svc := NewTokenService("")

	_, err := svc.GenerateToken(uuid.New(), "koch", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
