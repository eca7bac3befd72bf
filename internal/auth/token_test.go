package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	token, expiresAt, err := tm.Generate("biz-1", "owner@example.com", domain.RoleBusiness)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), expiresAt, time.Minute)

	claims := tm.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "biz-1", claims.BusinessID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, domain.RoleBusiness, claims.Role)
}

func TestTokenManager_GenerateWithoutSecret(t *testing.T) {
	tm := NewTokenManager("", 168)

	_, _, err := tm.Generate("biz-1", "owner@example.com", domain.RoleBusiness)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestTokenManager_VerifyTampered(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	token, _, err := tm.Generate("biz-1", "owner@example.com", domain.RoleBusiness)
	require.NoError(t, err)

	raw := []byte(token)
	raw[len(raw)-1] ^= 0x01
	assert.Nil(t, tm.Verify(string(raw)))
}

func TestTokenManager_VerifyWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)
	other := NewTokenManager("another-secret", 168)

	token, _, err := tm.Generate("biz-1", "owner@example.com", domain.RoleBusiness)
	require.NoError(t, err)

	assert.Nil(t, other.Verify(token))
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	now := time.Now()
	claims := &SessionClaims{
		BusinessID: "biz-1",
		Email:      "owner@example.com",
		Role:       domain.RoleBusiness,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "biz-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Nil(t, tm.Verify(token))
}

func TestTokenManager_VerifyGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	assert.Nil(t, tm.Verify(""))
	assert.Nil(t, tm.Verify("not-a-jwt"))
	assert.Nil(t, tm.Verify("a.b.c"))
}

func TestTokenManager_VerifyWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &SessionClaims{
		BusinessID: "biz-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Nil(t, tm.Verify(token))
}
