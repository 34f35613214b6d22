package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"community-events/config"
	"community-events/internal/database"
	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testSnapshotData(userID uuid.UUID) SnapshotData {
	name := "Ana"
	return SnapshotData{
		UserData: &model.User{ID: userID, Email: "ana@example.com", FullName: &name, Role: model.RoleOrganizer},
		Profile:  &model.Profile{ID: uuid.New(), UserID: userID, Skills: []string{"go"}},
	}
}

func TestMemoryPermissionCache(t *testing.T) {
	ctx := context.Background()

	t.Run("FreshWithinWindow", func(t *testing.T) {
		clock := newFakeClock()
		c := NewMemoryPermissionCacheWithClock(DefaultSnapshotTTL, clock.Now)
		userID := uuid.New()
		c.Save(ctx, userID, testSnapshotData(userID))

		clock.Advance(DefaultSnapshotTTL - time.Second)
		snap, ok := c.Load(ctx, userID)

		require.True(t, ok)
		assert.Equal(t, userID, snap.Data.UserData.ID)
		assert.Equal(t, model.RoleOrganizer, snap.Data.UserData.Role)
		assert.Equal(t, []string{"go"}, snap.Data.Profile.Skills)
		assert.Equal(t, clock.now.Add(-(DefaultSnapshotTTL - time.Second)).UnixMilli(), snap.Timestamp)
	})

	t.Run("StaleIsDiscarded", func(t *testing.T) {
		clock := newFakeClock()
		c := NewMemoryPermissionCacheWithClock(DefaultSnapshotTTL, clock.Now)
		userID := uuid.New()
		c.Save(ctx, userID, testSnapshotData(userID))

		clock.Advance(DefaultSnapshotTTL)
		_, ok := c.Load(ctx, userID)

		assert.False(t, ok)
		assert.Empty(t, c.entries)
	})

	t.Run("CorruptIsDiscarded", func(t *testing.T) {
		c := NewMemoryPermissionCache(DefaultSnapshotTTL)
		userID := uuid.New()
		c.entries[permissionKey(userID)] = []byte("{not json")

		_, ok := c.Load(ctx, userID)

		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		c := NewMemoryPermissionCache(DefaultSnapshotTTL)
		userID := uuid.New()
		c.Save(ctx, userID, testSnapshotData(userID))

		c.Clear(ctx, userID)
		_, ok := c.Load(ctx, userID)

		assert.False(t, ok)
	})

	t.Run("PerUserKeys", func(t *testing.T) {
		c := NewMemoryPermissionCache(DefaultSnapshotTTL)
		a, b := uuid.New(), uuid.New()
		c.Save(ctx, a, testSnapshotData(a))

		_, ok := c.Load(ctx, b)

		assert.False(t, ok)
		assert.Equal(t, "pb_user_permissions:"+a.String(), permissionKey(a))
	})
}

func TestDecodeSnapshot_Layout(t *testing.T) {
	raw := []byte(`{"data":{"userData":{"id":"6f1d3f2e-9a51-4d3e-8f57-2f0b1e8c6a11","email":"a@b.c","role":"admin"},"profile":null},"timestamp":1767225600000}`)

	snap, ok := decodeSnapshot(raw)

	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, snap.Data.UserData.Role)
	assert.Nil(t, snap.Data.Profile)
	assert.Equal(t, int64(1767225600000), snap.Timestamp)

	_, ok = decodeSnapshot([]byte(`{"data":{}}`))
	assert.False(t, ok)
}

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

func TestRedisPermissionCache(t *testing.T) {
	rdb := getTestRdb(t)
	ctx := context.Background()
	c := NewRedisPermissionCache(rdb, DefaultSnapshotTTL)
	userID := uuid.New()

	c.Save(ctx, userID, testSnapshotData(userID))
	snap, ok := c.Load(ctx, userID)
	require.True(t, ok)
	assert.Equal(t, userID, snap.Data.UserData.ID)

	ttl, err := rdb.TTL(ctx, permissionKey(userID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	clock := newFakeClock()
	clock.now = time.Now().Add(DefaultSnapshotTTL + time.Minute)
	c.now = clock.Now
	_, ok = c.Load(ctx, userID)
	assert.False(t, ok)

	c.now = time.Now
	c.Clear(ctx, userID)
	_, ok = c.Load(ctx, userID)
	assert.False(t, ok)
}
