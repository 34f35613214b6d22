package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"community-events/internal/model"
	"community-events/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	PermissionCacheKey = "pb_user_permissions"
	DefaultSnapshotTTL = 5 * time.Minute
)

// PermissionSnapshot 存下來的格式：{data: {userData, profile}, timestamp}
type PermissionSnapshot struct {
	Data      SnapshotData `json:"data"`
	Timestamp int64        `json:"timestamp"` // unix ms
}

type SnapshotData struct {
	UserData *model.User    `json:"userData"`
	Profile  *model.Profile `json:"profile"`
}

func (s *PermissionSnapshot) storedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

type PermissionCache interface {
	// Load returns the snapshot only while it is younger than the freshness window.
	Load(ctx context.Context, userID uuid.UUID) (*PermissionSnapshot, bool)
	Save(ctx context.Context, userID uuid.UUID, data SnapshotData)
	Clear(ctx context.Context, userID uuid.UUID)
}

func permissionKey(userID uuid.UUID) string {
	return PermissionCacheKey + ":" + userID.String()
}

type MemoryPermissionCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryPermissionCache(ttl time.Duration) *MemoryPermissionCache {
	return NewMemoryPermissionCacheWithClock(ttl, time.Now)
}

func NewMemoryPermissionCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryPermissionCache {
	return &MemoryPermissionCache{
		entries: make(map[string][]byte),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryPermissionCache) Load(ctx context.Context, userID uuid.UUID) (*PermissionSnapshot, bool) {
	key := permissionKey(userID)
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	snap, ok := decodeSnapshot(raw)
	if !ok || c.now().Sub(snap.storedAt()) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return snap, true
}

func (c *MemoryPermissionCache) Save(ctx context.Context, userID uuid.UUID, data SnapshotData) {
	raw, err := json.Marshal(PermissionSnapshot{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return
	}
	c.mu.Lock()
	c.entries[permissionKey(userID)] = raw
	c.mu.Unlock()
}

func (c *MemoryPermissionCache) Clear(ctx context.Context, userID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, permissionKey(userID))
	c.mu.Unlock()
}

// RedisPermissionCache 多實例共用；Redis TTL 與 timestamp 都檢查
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewRedisPermissionCache(client *redis.Client, ttl time.Duration) *RedisPermissionCache {
	return &RedisPermissionCache{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		log:    logger.WithComponent("permission_cache"),
	}
}

func (c *RedisPermissionCache) Load(ctx context.Context, userID uuid.UUID) (*PermissionSnapshot, bool) {
	raw, err := c.client.Get(ctx, permissionKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read permission snapshot", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, false
	}
	snap, ok := decodeSnapshot(raw)
	if !ok || c.now().Sub(snap.storedAt()) >= c.ttl {
		return nil, false
	}
	return snap, true
}

func (c *RedisPermissionCache) Save(ctx context.Context, userID uuid.UUID, data SnapshotData) {
	raw, err := json.Marshal(PermissionSnapshot{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, permissionKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to write permission snapshot", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (c *RedisPermissionCache) Clear(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, permissionKey(userID)).Err(); err != nil {
		c.log.Warn("Failed to clear permission snapshot", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// decodeSnapshot 壞掉的資料當作沒有
func decodeSnapshot(raw []byte) (*PermissionSnapshot, bool) {
	var snap PermissionSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Timestamp == 0 {
		return nil, false
	}
	return &snap, true
}
