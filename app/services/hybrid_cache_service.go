package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/cn-address-parser/app/models"
)

// HybridCacheService cache service kết hợp LRU trong tiến trình (L1) và
// Redis (L2). L2 failures are logged, never surfaced: the parse itself is
// cheap enough to redo.
type HybridCacheService struct {
	local  *LRUCacheService
	remote *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service.
func NewHybridCacheService(local *LRUCacheService, remote *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{local: local, remote: remote, logger: logger}
}

// Get thử L1 trước, sau đó L2; L2 hit được đồng bộ ngược lên L1.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	if result, found, _ := hcs.local.Get(ctx, key); found {
		return result, true, nil
	}

	result, found, err := hcs.remote.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("lỗi Redis cache, bỏ qua L2", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	hcs.local.Set(ctx, key, result)
	return result, true, nil
}

// Set ghi vào cả hai tầng.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	hcs.local.Set(ctx, key, result)
	if err := hcs.remote.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("lỗi ghi Redis cache", zap.Error(err))
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	hcs.local.Delete(ctx, key)
	return hcs.remote.Delete(ctx, key)
}

func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	hcs.local.Clear(ctx)
	return hcs.remote.Clear(ctx)
}

// GetStats gộp thống kê hai tầng. Miss lấy từ L2: mọi lượt tra L2 đã là
// một L1 miss, nên mỗi lượt Get chỉ được đếm một lần trong hit rate.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1, _ := hcs.local.GetStats(ctx)
	l2, err := hcs.remote.GetStats(ctx)
	if err != nil {
		return l1, nil
	}
	stats := &CacheStats{
		TotalHits: l1.TotalHits + l2.TotalHits,
		TotalMiss: l2.TotalMiss,
		Items:     l1.Items + l2.Items,
	}
	if total := stats.TotalHits + stats.TotalMiss; total > 0 {
		stats.HitRate = float64(stats.TotalHits) / float64(total)
	}
	return stats, nil
}

func (hcs *HybridCacheService) Close() error {
	hcs.local.Close()
	return hcs.remote.Close()
}
