package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// ErrNoSecret is returned when token signing is attempted without a configured secret.
var ErrNoSecret = errors.New("jwt secret not configured")

// TokenManager handles issuing and verifying session JWTs.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. Sessions default to 7 days.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	if ttlHours <= 0 {
		ttlHours = 168
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlHours) * time.Hour}
}

// SessionClaims describes the JWT payload carried by the auth cookie.
type SessionClaims struct {
	BusinessID string      `json:"businessId"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Generate builds and signs a session token for the subject.
func (tm *TokenManager) Generate(businessID, email string, role domain.Role) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, ErrNoSecret
	}

	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &SessionClaims{
		BusinessID: businessID,
		Email:      email,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   businessID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify returns the session claims, or nil on any failure: malformed token,
// wrong signature, or expiry. It never surfaces an error to callers.
func (tm *TokenManager) Verify(tokenStr string) *SessionClaims {
	if tokenStr == "" || len(tm.secret) == 0 {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil
	}
	return claims
}
