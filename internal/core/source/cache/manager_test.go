package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()
	ctx := context.Background()

	assert.NoError(t, m.Set(ctx, "key", "value"))

	value, err := m.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestManagerGetMiss(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()

	_, err := m.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	defer m.Close()
	ctx := context.Background()

	assert.NoError(t, m.Set(ctx, "key", "value"))
	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
}

func TestManagerEvictsWhenFull(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Minute))
	defer m.Close()
	ctx := context.Background()

	assert.NoError(t, m.Set(ctx, "a", "1"))
	assert.NoError(t, m.Set(ctx, "b", "2"))
	// 容量已滿，LRU 淘汰後仍可寫入
	assert.NoError(t, m.Set(ctx, "c", "3"))

	value, err := m.Get(ctx, "c")
	assert.NoError(t, err)
	assert.Equal(t, "3", value)
}

func TestNewStoreDisabled(t *testing.T) {
	cfg := cacheConfig(10, time.Minute)
	cfg.Cache.Enabled = false

	assert.Nil(t, NewStore(cfg))
}

func TestNewStoreMemory(t *testing.T) {
	store := NewStore(cacheConfig(10, time.Minute))

	assert.NotNil(t, store)
	assert.NoError(t, store.Close())
}
