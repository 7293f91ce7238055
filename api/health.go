package api

import "context"

// Health is the backend's self-reported status.
type Health struct {
	Status      string            `json:"status"` // "healthy" or "degraded"
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Services    map[string]string `json:"services"`
}

// HealthCheck reports the backend's status including its dependencies.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ready hits the readiness probe. A nil error means the backend accepts
// traffic.
func (c *Client) Ready(ctx context.Context) error {
	return c.get(ctx, "/health/ready", nil, nil)
}

// Live hits the liveness probe.
func (c *Client) Live(ctx context.Context) error {
	return c.get(ctx, "/health/live", nil, nil)
}
