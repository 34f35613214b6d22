package cache

import (
	"context"
	"testing"
	"time"

	"community-events/config"
	"community-events/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTestRdb 連不到測試 Redis (6380) 時跳過
func getTestRdb(t *testing.T) *redis.Client {
	t.Helper()
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		t.Skipf("test redis unavailable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

func TestRedisQueryCache(t *testing.T) {
	rdb := getTestRdb(t)
	ctx := context.Background()

	t.Run("SetGet", func(t *testing.T) {
		c := NewRedisQueryCache(rdb, time.Minute)
		c.Set(ctx, "k1", []byte("v1"))

		got, ok := c.Get(ctx, "k1")

		require.True(t, ok)
		assert.Equal(t, "v1", string(got))

		ttl, err := rdb.TTL(ctx, "query:k1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("Miss", func(t *testing.T) {
		c := NewRedisQueryCache(rdb, time.Minute)

		_, ok := c.Get(ctx, "nope")

		assert.False(t, ok)
	})

	t.Run("ClearByPattern", func(t *testing.T) {
		c := NewRedisQueryCache(rdb, time.Minute)
		c.Set(ctx, ResourceCountsKey(""), []byte("1"))
		c.Set(ctx, UpcomingEventsKey(6, true), []byte("2"))
		// 其他命名空間的 key 不應被清掉
		require.NoError(t, rdb.Set(ctx, "permissions:resource_counts", "x", time.Minute).Err())

		c.Clear(ctx, "resource_counts")

		_, ok := c.Get(ctx, ResourceCountsKey(""))
		assert.False(t, ok)
		_, ok = c.Get(ctx, UpcomingEventsKey(6, true))
		assert.True(t, ok)
		exists, err := rdb.Exists(ctx, "permissions:resource_counts").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("ClearAll", func(t *testing.T) {
		c := NewRedisQueryCache(rdb, time.Minute)
		c.Set(ctx, "a", []byte("1"))
		c.Set(ctx, "b", []byte("2"))

		c.Clear(ctx, "")

		_, ok := c.Get(ctx, "a")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "b")
		assert.False(t, ok)
	})
}
