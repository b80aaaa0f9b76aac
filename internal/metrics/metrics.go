// Package metrics đăng ký các Prometheus collector của service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal đếm request theo endpoint và status code.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addrparse_requests_total",
		Help: "Số request HTTP theo endpoint và status.",
	}, []string{"endpoint", "status"})

	// ParseDuration đo thời gian parse một địa chỉ (không tính cache hit).
	ParseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "addrparse_parse_duration_seconds",
		Help:    "Thời gian parse một địa chỉ.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})

	// CacheLookups đếm lượt tra cache theo kết quả hit/miss.
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addrparse_cache_lookups_total",
		Help: "Lượt tra cache theo kết quả.",
	}, []string{"outcome"})

	// ParseOutcomes đếm kết quả parse theo cờ deliverable/mismatch.
	ParseOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "addrparse_parse_outcomes_total",
		Help: "Kết quả parse theo nhãn chất lượng.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RequestsTotal, ParseDuration, CacheLookups, ParseOutcomes)
}
