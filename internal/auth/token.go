package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
)

// TokenManager issues and verifies the HMAC-signed session tokens the API
// hands out at login.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewTokenManager creates a token manager signing with the given secret.
func NewTokenManager(secret string, ttl time.Duration, logger *slog.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, logger: logger}, nil
}

// Issue creates a signed token carrying the user id as subject.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the user id it was issued for.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - only HS256 is ever issued
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		m.logger.Debug("token parse failed", "error", err)
		return "", domain.ErrUnauthorized
	}
	if !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		m.logger.Debug("token missing subject claim")
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
