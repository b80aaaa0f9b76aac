package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cn-address-parser/app/models"
	"github.com/cn-address-parser/internal/parser"
)

// ErrEmptyAddress được trả khi địa chỉ đầu vào rỗng.
var ErrEmptyAddress = errors.New("địa chỉ không được để trống")

// ParseService service xử lý logic parse địa chỉ, đứng trước engine với
// một tầng cache: kết quả parse là thuần túy theo đầu vào nên cache không
// bao giờ sai, chỉ có thể thiếu.
type ParseService struct {
	parser    *parser.AddressParser
	cache     ICacheService
	logger    *zap.Logger
	startTime time.Time
}

// NewParseService tạo mới ParseService.
func NewParseService(addressParser *parser.AddressParser, cache ICacheService, logger *zap.Logger) *ParseService {
	return &ParseService{
		parser:    addressParser,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}
}

// cacheKey băm địa chỉ thô; raw input có thể rất dài và chứa ký tự tùy ý
// nên không dùng trực tiếp làm key.
func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ParseAddress parse một địa chỉ, trả kèm cờ cache hit.
func (ps *ParseService) ParseAddress(ctx context.Context, raw string) (*models.ParseResult, bool, error) {
	if raw == "" {
		return nil, false, ErrEmptyAddress
	}

	key := cacheKey(raw)
	if cached, found, err := ps.cache.Get(ctx, key); err == nil && found {
		return cached, true, nil
	}

	result := ps.parser.Parse(raw)

	if err := ps.cache.Set(ctx, key, result); err != nil {
		ps.logger.Warn("lỗi lưu cache", zap.Error(err))
	}
	return result, false, nil
}

// ParseBatch parse nhiều địa chỉ; từng phần tử đi qua cache riêng. Địa chỉ
// rỗng trong batch cho kết quả rỗng thay vì làm hỏng cả lô.
func (ps *ParseService) ParseBatch(ctx context.Context, raws []string) []*models.ParseResult {
	results := make([]*models.ParseResult, len(raws))
	for i, raw := range raws {
		if raw == "" {
			results[i] = ps.parser.Parse("")
			continue
		}
		result, _, err := ps.ParseAddress(ctx, raw)
		if err != nil {
			result = ps.parser.Parse(raw)
		}
		results[i] = result
	}
	return results
}

// Uptime thời gian service đã chạy.
func (ps *ParseService) Uptime() time.Duration {
	return time.Since(ps.startTime)
}

// CacheStats thống kê cache cho endpoint quản trị.
func (ps *ParseService) CacheStats(ctx context.Context) (*CacheStats, error) {
	return ps.cache.GetStats(ctx)
}
