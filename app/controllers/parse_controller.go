package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/config"
	"github.com/cn-address-parser/app/requests"
	"github.com/cn-address-parser/app/responses"
	"github.com/cn-address-parser/app/services"
	"github.com/cn-address-parser/internal/metrics"
)

// ServiceVersion báo trong health check.
const ServiceVersion = "1.0.0"

// ParseController controller xử lý các request parse địa chỉ.
type ParseController struct {
	parseService *services.ParseService
	logger       *zap.Logger
}

// NewParseController tạo mới ParseController.
func NewParseController(parseService *services.ParseService, logger *zap.Logger) *ParseController {
	return &ParseController{parseService: parseService, logger: logger}
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// ParseAddress xử lý POST /parse.
func (pc *ParseController) ParseAddress(c *gin.Context) {
	var req requests.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:     "validation_error",
			Message:   "raw_address là bắt buộc",
			RequestID: requestID(c),
			Details:   err.Error(),
		})
		return
	}

	start := time.Now()
	result, cacheHit, err := pc.parseService.ParseAddress(c.Request.Context(), req.RawAddress)
	if err != nil {
		pc.logger.Error("lỗi parse địa chỉ", zap.Error(err), zap.String("request_id", requestID(c)))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "internal_error",
			Message:   "không xử lý được địa chỉ",
			RequestID: requestID(c),
		})
		return
	}

	if cacheHit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		metrics.ParseDuration.Observe(time.Since(start).Seconds())
	}
	if result.Deliverable {
		metrics.ParseOutcomes.WithLabelValues("deliverable").Inc()
	} else {
		metrics.ParseOutcomes.WithLabelValues("undeliverable").Inc()
	}
	if result.PostalMismatch {
		metrics.ParseOutcomes.WithLabelValues("postal_mismatch").Inc()
	}

	// Response contract: the flat ParseResult object itself.
	c.JSON(http.StatusOK, result)
}

// BatchParse xử lý POST /parse/batch.
func (pc *ParseController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:     "validation_error",
			Message:   "addresses là bắt buộc và không được rỗng",
			RequestID: requestID(c),
			Details:   err.Error(),
		})
		return
	}
	if limit := config.C.Batch.MaxAddresses; len(req.Addresses) > limit {
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:     "validation_error",
			Message:   "batch vượt quá giới hạn",
			RequestID: requestID(c),
			Details:   gin.H{"max_addresses": limit, "got": len(req.Addresses)},
		})
		return
	}

	start := time.Now()
	results := pc.parseService.ParseBatch(c.Request.Context(), req.Addresses)

	c.JSON(http.StatusOK, responses.BatchParseResponse{
		Results:          results,
		Total:            len(results),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// HealthCheck xử lý GET /health, /ready, /live.
func (pc *ParseController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:        "ok",
		Version:       ServiceVersion,
		UptimeSeconds: int64(pc.parseService.Uptime().Seconds()),
	})
}

// CacheStats xử lý GET /stats/cache.
func (pc *ParseController) CacheStats(c *gin.Context) {
	stats, err := pc.parseService.CacheStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "internal_error",
			Message:   "không đọc được thống kê cache",
			RequestID: requestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
