package routes

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/responses"
	"github.com/cn-address-parser/helpers/utils"
	"github.com/cn-address-parser/internal/metrics"
)

// AuthConfig cấu hình xác thực đọc từ môi trường.
type AuthConfig struct {
	// APIKeys các key hợp lệ cho header X-API-Key.
	APIKeys map[string]bool
	// ProxySecret giá trị mong đợi của header X-RapidAPI-Proxy-Secret.
	ProxySecret string
	// AllowKeyless cho phép chạy không xác thực khi chưa cấu hình key nào
	// (mặc định bật, dành cho môi trường dev).
	AllowKeyless bool
}

// Configured báo đã có ít nhất một phương thức xác thực.
func (ac AuthConfig) Configured() bool {
	return len(ac.APIKeys) > 0 || ac.ProxySecret != ""
}

// AuthConfigFromEnv đọc API_KEYS, RAPIDAPI_PROXY_SECRET và
// ALLOW_KEYLESS_ACCESS.
func AuthConfigFromEnv() AuthConfig {
	cfg := AuthConfig{
		APIKeys:      map[string]bool{},
		ProxySecret:  os.Getenv("RAPIDAPI_PROXY_SECRET"),
		AllowKeyless: true,
	}
	for _, key := range strings.Split(os.Getenv("API_KEYS"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.APIKeys[key] = true
		}
	}
	if v := os.Getenv("ALLOW_KEYLESS_ACCESS"); v != "" {
		if allowed, err := strconv.ParseBool(v); err == nil {
			cfg.AllowKeyless = allowed
		}
	}
	return cfg
}

// RequestIDMiddleware gắn request ID vào context và response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateUUID()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// MetricsMiddleware đếm request theo route template và status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthMiddleware kiểm tra X-API-Key hoặc X-RapidAPI-Proxy-Secret.
// Chưa cấu hình key nào: cho qua nếu AllowKeyless, ngược lại là lỗi
// triển khai (auth_not_configured) chứ không phải lỗi của caller.
func AuthMiddleware(cfg AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		proxySecret := c.GetHeader("X-RapidAPI-Proxy-Secret")

		switch {
		case cfg.ProxySecret != "" && proxySecret == cfg.ProxySecret:
			c.Next()
		case apiKey != "" && cfg.APIKeys[apiKey]:
			c.Next()
		case !cfg.Configured() && cfg.AllowKeyless:
			c.Next()
		case !cfg.Configured():
			logger.Error("xác thực chưa được cấu hình nhưng keyless access bị tắt")
			c.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Error:     "auth_not_configured",
				Message:   "service chưa cấu hình xác thực",
				RequestID: c.GetString("request_id"),
			})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:     "unauthorized",
				Message:   "thiếu hoặc sai thông tin xác thực",
				RequestID: c.GetString("request_id"),
			})
		}
	}
}
