// Package metrics 提供 Prometheus 指標
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal HTTP 請求數
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixology_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration HTTP 請求耗時
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mixology_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	// APIRateLimitHits 被限流的請求數
	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixology_api_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// RecommendationsServed 推薦請求數，依種類
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixology_recommendations_total",
			Help: "Recommendation lists computed, by kind",
		},
		[]string{"kind"},
	)

	// RecipesScored 被評分的酒譜數
	RecipesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mixology_recipes_scored_total",
			Help: "Recipes scored across all recommendation requests",
		},
	)

	// ShoppingMutations 購物清單變更，依操作與結果
	ShoppingMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixology_shopping_mutations_total",
			Help: "Shopping list mutations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// CatalogCacheHits 目錄快取命中
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mixology_catalog_cache_hits_total",
			Help: "Recipe catalog cache hits",
		},
	)

	// CatalogCacheMisses 目錄快取未命中
	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mixology_catalog_cache_misses_total",
			Help: "Recipe catalog cache misses",
		},
	)
)

// RecordAPIRequest 記錄一次 HTTP 請求
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation 記錄一次推薦計算
func RecordRecommendation(kind string, scored int) {
	RecommendationsServed.WithLabelValues(kind).Inc()
	RecipesScored.Add(float64(scored))
}

// RecordShoppingMutation 記錄購物清單變更結果
func RecordShoppingMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ShoppingMutations.WithLabelValues(operation, result).Inc()
}
