package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/perfumaria/catalog-api/internal/auth"
	"github.com/perfumaria/catalog-api/internal/shared"
	_ "github.com/perfumaria/catalog-api/testing"
)

func newTokenManager(t *testing.T, ttl time.Duration) *auth.TokenManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewTokenManager("test-secret", ttl, client)
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := newTokenManager(t, time.Hour)

	token, err := mgr.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Verify(context.Background(), token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr := newTokenManager(t, time.Hour)

	_, err := mgr.Verify(context.Background(), "not-a-token")
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	mgr := newTokenManager(t, time.Hour)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	forged := auth.NewTokenManager("other-secret", time.Hour, client)

	forgedToken, err := forged.Issue(1)
	require.NoError(t, err)

	_, err = mgr.Verify(context.Background(), forgedToken)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestVerifyRejectsExpired(t *testing.T) {
	mgr := newTokenManager(t, -time.Minute)

	token, err := mgr.Issue(7)
	require.NoError(t, err)

	_, err = mgr.Verify(context.Background(), token)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestInvalidateDeniesToken(t *testing.T) {
	mgr := newTokenManager(t, time.Hour)
	ctx := context.Background()

	token, err := mgr.Issue(9)
	require.NoError(t, err)

	claims, err := mgr.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, mgr.Invalidate(ctx, claims.ID, claims.ExpiresAt.Time))

	_, err = mgr.Verify(ctx, token)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestRefreshSupersedesOldToken(t *testing.T) {
	mgr := newTokenManager(t, time.Hour)
	ctx := context.Background()

	oldToken, err := mgr.Issue(3)
	require.NoError(t, err)

	oldClaims, err := mgr.Verify(ctx, oldToken)
	require.NoError(t, err)

	newToken, err := mgr.Refresh(ctx, oldClaims.ID, oldClaims.ExpiresAt.Time, 3)
	require.NoError(t, err)
	require.NotEqual(t, oldToken, newToken)

	claims, err := mgr.Verify(ctx, newToken)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(3), userID)

	_, err = mgr.Verify(ctx, oldToken)
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}
