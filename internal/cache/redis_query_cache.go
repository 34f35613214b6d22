package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"community-events/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultRedisPrefix = "query:"
	clearScanCount     = 200
)

// RedisQueryCache shares cached query results between instances.
// Redis enforces the TTL, so expired keys are simply absent on read.
type RedisQueryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisQueryCache(client *redis.Client, ttl time.Duration) *RedisQueryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisQueryCache{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    ttl,
	}
}

func (c *RedisQueryCache) key(k string) string {
	return c.prefix + k
}

func (c *RedisQueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithComponent("cache").Warn("Redis get failed, treating as miss", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (c *RedisQueryCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, c.key(key), payload, c.ttl).Err(); err != nil {
		logger.WithComponent("cache").Warn("Redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear walks the keyspace with SCAN (never KEYS) and deletes every key under
// the prefix whose name contains pattern.
func (c *RedisQueryCache) Clear(ctx context.Context, pattern string) {
	match := c.prefix + "*"
	if pattern != "" {
		match = c.prefix + "*" + escapeGlob(pattern) + "*"
	}

	log := logger.WithComponent("cache").With(zap.String("pattern", pattern))
	iter := c.client.Scan(ctx, 0, match, clearScanCount).Iterator()
	batch := make([]string, 0, clearScanCount)
	deleted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearScanCount {
			deleted += c.del(ctx, batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn("Redis scan failed", zap.Error(err))
	}
	if len(batch) > 0 {
		deleted += c.del(ctx, batch)
	}
	log.Info("Query cache cleared", zap.Int("deleted", deleted))
}

func (c *RedisQueryCache) del(ctx context.Context, keys []string) int {
	n, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		logger.WithComponent("cache").Warn("Redis del failed", zap.Error(err))
		return 0
	}
	return int(n)
}

// escapeGlob 跳脫 SCAN MATCH 的特殊字元，讓 pattern 以子字串比對
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
