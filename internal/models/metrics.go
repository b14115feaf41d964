package models

import "time"

// SystemMetrics is the aggregated runtime snapshot served on the dashboard
// system panel.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	ReportRunsTotal          uint64    `json:"reportRunsTotal"`
	ReportRunFailures        uint64    `json:"reportRunFailures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
