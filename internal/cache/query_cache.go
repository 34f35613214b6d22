package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"community-events/pkg/logger"

	"go.uber.org/zap"
)

// DefaultTTL 查詢快取的固定存活時間
const DefaultTTL = 5 * time.Minute

// QueryCache memoizes serialized read-query results by key.
// Entries expire a fixed TTL after insertion; writes never invalidate them.
type QueryCache interface {
	// 取得：未命中或已過期時回傳 false
	Get(ctx context.Context, key string) ([]byte, bool)
	// 寫入：last-write-wins
	Set(ctx context.Context, key string, payload []byte)
	// 清除：移除 key 含有 pattern 的項目，pattern 為空時清除全部
	Clear(ctx context.Context, pattern string)
}

type memoryEntry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryQueryCache is the process-scoped implementation. Expired entries are
// dropped on the next read of their key; there is no background sweep.
type MemoryQueryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryQueryCache(ttl time.Duration) *MemoryQueryCache {
	return NewMemoryQueryCacheWithClock(ttl, time.Now)
}

func NewMemoryQueryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryQueryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryQueryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryQueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// 重新檢查：可能已被其他 goroutine 更新
		if current, ok := c.entries[key]; ok && current.storedAt.Equal(entry.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.payload, true
}

func (c *MemoryQueryCache) Set(ctx context.Context, key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *MemoryQueryCache) Clear(ctx context.Context, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		c.entries = make(map[string]memoryEntry)
		return
	}
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
		}
	}
}

// Len reports how many entries are held, expired ones included.
func (c *MemoryQueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NoopQueryCache never stores anything.
type NoopQueryCache struct{}

func NewNoopQueryCache() NoopQueryCache {
	return NoopQueryCache{}
}

func (NoopQueryCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoopQueryCache) Set(context.Context, string, []byte)         {}
func (NoopQueryCache) Clear(context.Context, string)               {}

// Remember returns the cached value for key, or runs load and caches its JSON
// encoding. Errors from load are returned as-is and nothing is cached.
func Remember[T any](ctx context.Context, c QueryCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if payload, ok := c.Get(ctx, key); ok {
		var cached T
		err := json.Unmarshal(payload, &cached)
		if err == nil {
			return cached, nil
		}
		logger.WithComponent("cache").Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.WithComponent("cache").Warn("Skipping cache for unencodable value", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	c.Set(ctx, key, payload)
	return value, nil
}
