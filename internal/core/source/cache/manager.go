package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 資料源回應快取介面，未命中或停用時回傳錯誤
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewStore 依設定挑選快取後端：Redis 或行程內記憶體。
// 快取停用時回傳 nil，呼叫端須容忍 nil Store
func NewStore(cfg *config.Config) Store {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}
	if cfg.Cache.RedisEnabled {
		store, err := NewRedisStore(cfg)
		if err != nil {
			common.LogWarn("Redis 快取初始化失敗，改用記憶體快取", zap.Error(err))
			return NewManager(cfg)
		}
		return store
	}
	return NewManager(cfg)
}

// Manager 行程內記憶體快取，TTL 到期淘汰加 LRU 上限控制
type Manager struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
	done   chan struct{}
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager 創建記憶體快取
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		done:   make(chan struct{}),
	}

	// 啟動清理過期緩存的協程
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	hashed := hashKey(key)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[hashed]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", common.ErrCacheDisabled
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(m.store, hashed)
		m.stats.evictions++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return "", common.ErrCacheDisabled
	}

	// 更新訪問統計
	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[hashed] = entry
	m.stats.hits++

	common.LogCacheHit("memory", key)
	return entry.value, nil
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查緩存大小
	if len(m.store) >= m.config.Cache.MaxSize {
		evicted := m.cleanup()
		common.LogInfo("快取清理執行",
			zap.Int("清理數量", evicted),
		)

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRU()
		}

		// 如果仍然超過大小限制，返回錯誤
		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("快取已滿",
				zap.Int("目前容量", len(m.store)),
			)
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[hashKey(key)] = cacheEntry{
		value:       value,
		expiresAt:   now.Add(m.config.Cache.TTL),
		createdAt:   now,
		lastAccess:  now,
		accessCount: 0,
	}

	return nil
}

// Close 停止背景清理協程
func (m *Manager) Close() error {
	close(m.done)
	return nil
}

// hashKey 計算鍵的 SHA-256 哈希值，避免超長鍵
func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// startCleanup 啟動清理過期緩存的協程
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanup 清理過期的緩存（呼叫端須持有鎖）
func (m *Manager) cleanup() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRU 執行 LRU 清理（呼叫端須持有鎖）
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	// 找到最少訪問的項目
	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}
