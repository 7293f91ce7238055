package analytics

import "time"

// Period values accepted by the analytics endpoints.
const (
	PeriodHour    = "1h"
	Period24Hours = "24h"
	Period7Days   = "7d"
	Period30Days  = "30d"
	Period90Days  = "90d"
)

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalDeployments   int     `json:"total_deployments"`
	ActiveDeployments  int     `json:"active_deployments"`
	TotalDocuments     int     `json:"total_documents"`
	TotalRequestsToday int     `json:"total_requests_today"`
	TotalCostThisMonth float64 `json:"total_cost_this_month"`
	APIKeysCount       int     `json:"api_keys_count"`
}

// UsageMetrics is the aggregate usage over a period.
type UsageMetrics struct {
	TotalRequests      int     `json:"total_requests"`
	SuccessfulRequests int     `json:"successful_requests"`
	FailedRequests     int     `json:"failed_requests"`
	TotalTokens        int     `json:"total_tokens"`
	PromptTokens       int     `json:"prompt_tokens"`
	CompletionTokens   int     `json:"completion_tokens"`
	EstimatedCost      float64 `json:"estimated_cost"`
	AvgLatencyMS       float64 `json:"avg_latency_ms"`
	P95LatencyMS       float64 `json:"p95_latency_ms"`
	CacheHitRate       float64 `json:"cache_hit_rate"`
}

// TimeSeriesPoint is one sample in a usage time series.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries is a metric sampled over a period.
type TimeSeries struct {
	MetricName string            `json:"metric_name"`
	Data       []TimeSeriesPoint `json:"data"`
	Total      float64           `json:"total"`
	Average    float64           `json:"average"`
}

// ModelUsage is the per-model usage breakdown.
type ModelUsage struct {
	Model      string  `json:"model"`
	Requests   int     `json:"requests"`
	Tokens     int     `json:"tokens"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// Trend describes period-over-period movement.
type Trend struct {
	ChangePercent float64 `json:"change_percent"`
	Direction     string  `json:"direction"`
}

// DeploymentCost is one deployment's share of spend.
type DeploymentCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// CostBreakdown is spend by category and by deployment over a period.
type CostBreakdown struct {
	Period       string             `json:"period"`
	TotalCost    float64            `json:"total_cost"`
	Breakdown    map[string]float64 `json:"breakdown"`
	ByDeployment []DeploymentCost   `json:"by_deployment"`
	Trend        Trend              `json:"trend"`
}

// ErrorCount is one error category's share of failures.
type ErrorCount struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ErrorReport is the error analytics response.
type ErrorReport struct {
	Period      string       `json:"period"`
	TotalErrors int          `json:"total_errors"`
	ErrorRate   float64      `json:"error_rate"`
	ByType      []ErrorCount `json:"by_type"`
	Trend       Trend        `json:"trend"`
}
