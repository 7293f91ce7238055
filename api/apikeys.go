package api

import (
	"context"

	"github.com/Sereen-Kh/ai-deployment-platform/apikeys"
)

// ListAPIKeys returns the caller's API keys. Secrets are never included -
// only the key prefix identifies each record.
func (c *Client) ListAPIKeys(ctx context.Context) ([]apikeys.APIKey, error) {
	var out []apikeys.APIKey
	if err := c.get(ctx, "/api-keys", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAPIKey mints a new key. The response is the only time the full secret
// is available; callers must surface it to the user immediately.
func (c *Client) CreateAPIKey(ctx context.Context, req apikeys.CreateRequest) (*apikeys.Created, error) {
	var out apikeys.Created
	if err := c.post(ctx, "/api-keys", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAPIKey revokes a key by ID.
func (c *Client) DeleteAPIKey(ctx context.Context, id string) error {
	return c.delete(ctx, "/api-keys/"+id, nil)
}
