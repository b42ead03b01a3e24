package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/perfumaria/catalog-api/internal/shared"
)

const denylistKeyPrefix = "auth:denylist:"

// Claims is the payload carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the user id bound to the token.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenManager mints, verifies and invalidates bearer tokens. Invalidated
// token ids live in Redis until their natural expiry.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	denylist *redis.Client
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration, denylist *redis.Client) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
	}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a signed token bound to the given user id.
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Tokens with a bad signature,
// an elapsed expiry or an invalidated id are rejected with ErrUnauthenticated.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, shared.ErrUnauthenticated
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, shared.ErrUnauthenticated
	}

	revoked, err := m.denylist.Exists(ctx, denylistKeyPrefix+claims.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("auth: denylist lookup: %w", err)
	}
	if revoked > 0 {
		return nil, shared.ErrUnauthenticated
	}
	return claims, nil
}

// Invalidate marks a token id as revoked for the remainder of its lifetime.
func (m *TokenManager) Invalidate(ctx context.Context, tokenID string, expiresAt time.Time) error {
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}
	if err := m.denylist.Set(ctx, denylistKeyPrefix+tokenID, "1", remaining).Err(); err != nil {
		return fmt.Errorf("auth: denylist set: %w", err)
	}
	return nil
}

// Refresh invalidates the presented token and mints a new one for the same
// identity.
func (m *TokenManager) Refresh(ctx context.Context, tokenID string, expiresAt time.Time, userID int64) (string, error) {
	if err := m.Invalidate(ctx, tokenID, expiresAt); err != nil {
		return "", err
	}
	return m.Issue(userID)
}
