package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Sereen-Kh/ai-deployment-platform/deployments"
)

// ListDeploymentsOptions filters and pages the deployments listing.
type ListDeploymentsOptions struct {
	Page     int
	PageSize int
	Status   deployments.Status
}

// ListDeployments returns a page of the caller's deployments.
func (c *Client) ListDeployments(ctx context.Context, opts *ListDeploymentsOptions) (*deployments.List, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Status != "" {
			query.Set("status_filter", string(opts.Status))
		}
	}

	var out deployments.List
	if err := c.get(ctx, "/deployments", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeployment returns a single deployment by ID.
func (c *Client) GetDeployment(ctx context.Context, id string) (*deployments.Deployment, error) {
	var out deployments.Deployment
	if err := c.get(ctx, "/deployments/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDeployment provisions a new deployment.
func (c *Client) CreateDeployment(ctx context.Context, req deployments.CreateRequest) (*deployments.Deployment, error) {
	var out deployments.Deployment
	if err := c.post(ctx, "/deployments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDeployment patches a deployment; nil fields are left unchanged.
func (c *Client) UpdateDeployment(ctx context.Context, id string, req deployments.UpdateRequest) (*deployments.Deployment, error) {
	var out deployments.Deployment
	if err := c.patch(ctx, "/deployments/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDeployment tears a deployment down.
func (c *Client) DeleteDeployment(ctx context.Context, id string) error {
	return c.delete(ctx, "/deployments/"+id, nil)
}

// StartDeployment transitions a stopped deployment towards running.
func (c *Client) StartDeployment(ctx context.Context, id string) (*deployments.Deployment, error) {
	return c.lifecycle(ctx, id, "start")
}

// StopDeployment transitions a running deployment towards stopped.
func (c *Client) StopDeployment(ctx context.Context, id string) (*deployments.Deployment, error) {
	return c.lifecycle(ctx, id, "stop")
}

// RedeployDeployment rebuilds and rolls a deployment, bumping its version.
func (c *Client) RedeployDeployment(ctx context.Context, id string) (*deployments.Deployment, error) {
	return c.lifecycle(ctx, id, "redeploy")
}

func (c *Client) lifecycle(ctx context.Context, id, action string) (*deployments.Deployment, error) {
	var out deployments.Deployment
	if err := c.post(ctx, "/deployments/"+id+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeploymentStats returns traffic statistics for one deployment over a period
// such as "24h", "7d" or "30d".
func (c *Client) DeploymentStats(ctx context.Context, id, period string) (*deployments.Stats, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}

	var out deployments.Stats
	if err := c.get(ctx, "/deployments/"+id+"/stats", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
