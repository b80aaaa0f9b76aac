package services

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/models"
)

// LRUCacheService cache service trong tiến trình (L1) dùng LRU cố định.
type LRUCacheService struct {
	cache  *lru.Cache[string, *models.ParseResult]
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewLRUCacheService tạo mới LRU cache service.
func NewLRUCacheService(size int, logger *zap.Logger) (*LRUCacheService, error) {
	cache, err := lru.New[string, *models.ParseResult](size)
	if err != nil {
		return nil, err
	}
	return &LRUCacheService{cache: cache, logger: logger}, nil
}

func (lcs *LRUCacheService) Get(_ context.Context, key string) (*models.ParseResult, bool, error) {
	result, found := lcs.cache.Get(key)
	if !found {
		atomic.AddInt64(&lcs.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&lcs.hits, 1)
	return result, true, nil
}

func (lcs *LRUCacheService) Set(_ context.Context, key string, result *models.ParseResult) error {
	lcs.cache.Add(key, result)
	return nil
}

func (lcs *LRUCacheService) Delete(_ context.Context, key string) error {
	lcs.cache.Remove(key)
	return nil
}

func (lcs *LRUCacheService) Clear(_ context.Context) error {
	lcs.cache.Purge()
	return nil
}

func (lcs *LRUCacheService) GetStats(_ context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&lcs.hits)
	misses := atomic.LoadInt64(&lcs.misses)
	stats := &CacheStats{
		TotalHits: hits,
		TotalMiss: misses,
		Items:     int64(lcs.cache.Len()),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

func (lcs *LRUCacheService) Close() error {
	return nil
}
