package api

import (
	"context"
	"net/url"

	"github.com/Sereen-Kh/ai-deployment-platform/analytics"
)

// Dashboard returns the overview statistics for the dashboard landing page.
func (c *Client) Dashboard(ctx context.Context) (*analytics.DashboardStats, error) {
	var out analytics.DashboardStats
	if err := c.get(ctx, "/analytics/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UsageOptions scopes a usage query.
type UsageOptions struct {
	Period       string // "1h", "24h", "7d", "30d", "90d"
	DeploymentID string
}

func (o *UsageOptions) values() url.Values {
	query := url.Values{}
	if o == nil {
		return query
	}
	if o.Period != "" {
		query.Set("period", o.Period)
	}
	if o.DeploymentID != "" {
		query.Set("deployment_id", o.DeploymentID)
	}
	return query
}

// Usage returns aggregate usage metrics over a period.
func (c *Client) Usage(ctx context.Context, opts *UsageOptions) (*analytics.UsageMetrics, error) {
	var out analytics.UsageMetrics
	if err := c.get(ctx, "/analytics/usage", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UsageTimeseries returns one metric ("requests", "tokens", "cost", ...)
// sampled over a period.
func (c *Client) UsageTimeseries(ctx context.Context, metric, period string) (*analytics.TimeSeries, error) {
	query := url.Values{}
	if metric != "" {
		query.Set("metric", metric)
	}
	if period != "" {
		query.Set("period", period)
	}

	var out analytics.TimeSeries
	if err := c.get(ctx, "/analytics/usage/timeseries", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelUsage returns the per-model usage breakdown over a period.
func (c *Client) ModelUsage(ctx context.Context, period string) ([]analytics.ModelUsage, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}

	var out []analytics.ModelUsage
	if err := c.get(ctx, "/analytics/models", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Costs returns spend broken down by category and deployment over a period.
func (c *Client) Costs(ctx context.Context, period string) (*analytics.CostBreakdown, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}

	var out analytics.CostBreakdown
	if err := c.get(ctx, "/analytics/costs", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ErrorAnalytics returns the error-rate breakdown over a period, optionally
// scoped to one deployment.
func (c *Client) ErrorAnalytics(ctx context.Context, opts *UsageOptions) (*analytics.ErrorReport, error) {
	var out analytics.ErrorReport
	if err := c.get(ctx, "/analytics/errors", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
