package services

import (
	"context"

	"github.com/cn-address-parser/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate   float64 `json:"hit_rate"`
	TotalHits int64   `json:"total_hits"`
	TotalMiss int64   `json:"total_miss"`
	Items     int64   `json:"items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache.
// Parse results are deterministic for a given input, so cached entries
// never go stale except on reference-data upgrades (a deploy).
type ICacheService interface {
	// Get lấy kết quả parse từ cache
	Get(ctx context.Context, key string) (*models.ParseResult, bool, error)

	// Set lưu kết quả parse vào cache
	Set(ctx context.Context, key string, result *models.ParseResult) error

	// Delete xóa một key khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}
