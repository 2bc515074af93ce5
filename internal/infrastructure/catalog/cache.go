package catalog

import (
	"context"
	"sync"
	"time"

	"mixology-engine/internal/core/cocktail"
	"mixology-engine/internal/metrics"
	"mixology-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// CachedCatalog 在記憶體中快取整份目錄，過期後才回源
type CachedCatalog struct {
	source cocktail.RecipeCatalog
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	recipes   []cocktail.Recipe
	expiresAt time.Time
	stats     CacheStats
}

// CacheStats 快取統計
type CacheStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Refreshes   int64     `json:"refreshes"`
	Errors      int64     `json:"errors"`
	LastRefresh time.Time `json:"lastRefresh"`
}

var _ cocktail.RecipeCatalog = (*CachedCatalog)(nil)

// NewCachedCatalog 創建快取目錄，ttl <= 0 表示永不過期
func NewCachedCatalog(source cocktail.RecipeCatalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetAll 實現 cocktail.RecipeCatalog
func (c *CachedCatalog) GetAll(ctx context.Context) ([]cocktail.Recipe, error) {
	c.mu.RLock()
	if c.recipes != nil && (c.ttl <= 0 || c.now().Before(c.expiresAt)) {
		recipes := c.recipes
		c.mu.RUnlock()
		c.hit()
		return recipes, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// 其他 goroutine 可能已經完成回源
	if c.recipes != nil && (c.ttl <= 0 || c.now().Before(c.expiresAt)) {
		c.stats.Hits++
		metrics.CatalogCacheHits.Inc()
		return c.recipes, nil
	}

	c.stats.Misses++
	metrics.CatalogCacheMisses.Inc()
	common.LogCacheMiss("catalog", "recipes")

	recipes, err := c.source.GetAll(ctx)
	if err != nil {
		c.stats.Errors++
		if c.recipes != nil {
			common.LogWarn("目錄回源失敗，沿用過期資料", zap.Error(err))
			return c.recipes, nil
		}
		return nil, err
	}

	now := c.now()
	c.recipes = recipes
	c.expiresAt = now.Add(c.ttl)
	c.stats.Refreshes++
	c.stats.LastRefresh = now

	common.LogInfo("目錄快取已更新",
		zap.Int("recipes", len(recipes)),
		zap.Duration("ttl", c.ttl),
	)
	return recipes, nil
}

func (c *CachedCatalog) hit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	metrics.CatalogCacheHits.Inc()
	common.LogCacheHit("catalog", "recipes")
}

// Invalidate 清除快取，下次讀取時回源
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	c.recipes = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
	common.LogInfo("目錄快取已清除")
}

// Stats 取得快取統計
func (c *CachedCatalog) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
