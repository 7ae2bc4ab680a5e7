package cache

import (
	"context"
	"fmt"

	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore Redis 後端的資料源快取
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 快取
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存值
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", common.ErrCacheDisabled
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// Set 設置緩存值
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKey(key), value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisKey 統一鍵前綴
func redisKey(key string) string {
	return "source:response:" + key
}
