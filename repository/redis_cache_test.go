package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewRedisCache(RedisOptions{Addr: mr.Addr(), TTL: ttl})
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "deal:calc:v1:missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "deal:calc:v1:abc", `{"series":[]}`))

	val, ok := cache.Get(ctx, "deal:calc:v1:abc")
	assert.True(t, ok)
	assert.Equal(t, `{"series":[]}`, val)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value"))
	assert.Equal(t, time.Minute, mr.TTL("key"))

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCache_ZeroTTLKeepsEntry(t *testing.T) {
	cache, mr := newTestRedisCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value"))
	mr.FastForward(24 * time.Hour)

	val, ok := cache.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestRedisCache_Ping(t *testing.T) {
	cache, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	err := cache.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestRedisCache_UnavailableServerIsAMiss(t *testing.T) {
	cache, mr := newTestRedisCache(t, time.Minute)
	mr.Close()

	_, ok := cache.Get(context.Background(), "key")
	assert.False(t, ok)
	assert.Error(t, cache.Set(context.Background(), "key", "value"))
}
