package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogforge/blogforge/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevocationStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "token-1", time.Now().Add(30*time.Minute))
	require.NoError(t, err)

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-never-seen")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevocationStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "token-ttl", time.Now().Add(100*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	revoked, err := store.IsRevoked(ctx, "token-ttl")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_AlreadyExpiredToken(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevocationStore(client)
	ctx := context.Background()

	// Revoking an expired token is a no-op; expiry already rejects it.
	err := store.Revoke(ctx, "token-expired", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	exists := client.Exists(ctx, "revoked:token-expired").Val()
	assert.Equal(t, int64(0), exists)
}

func TestRevocationStore_ExpiryAgainstInjectedClock(t *testing.T) {
	// A nil client proves the expired branch never touches Redis; these run
	// without a server.
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := NewRevocationStore(nil).WithClock(func() time.Time { return base })
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "token-past", base.Add(-time.Minute)))
	require.NoError(t, store.Revoke(ctx, "token-exactly-now", base))
}

func TestRevocationStore_EmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevocationStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token ID cannot be empty")

	revoked, err := store.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevocationStoreWithPrefix(client, "test-revoked:")
	ctx := context.Background()

	err := store.Revoke(ctx, "prefix-test", time.Now().Add(30*time.Minute))
	require.NoError(t, err)

	exists := client.Exists(ctx, "test-revoked:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	revoked, err := store.IsRevoked(ctx, "prefix-test")
	require.NoError(t, err)
	assert.True(t, revoked)
}
