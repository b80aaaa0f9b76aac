package responses

import "github.com/cn-address-parser/app/models"

// ErrorResponse là cấu trúc lỗi chung cho mọi endpoint.
// Error is a machine-readable kind: validation_error, unauthorized,
// auth_not_configured or internal_error.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// BatchParseResponse body của POST /parse/batch.
type BatchParseResponse struct {
	Results          []*models.ParseResult `json:"results"`
	Total            int                   `json:"total"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
}

// HealthResponse body của GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
