package api

import (
	"context"

	"github.com/Sereen-Kh/ai-deployment-platform/playground"
)

// Chat sends a conversation to the playground and returns the complete
// response in one shot. For incremental output use StreamChat.
func (c *Client) Chat(ctx context.Context, req playground.ChatRequest) (*playground.ChatResponse, error) {
	req.Stream = false
	var out playground.ChatResponse
	if err := c.post(ctx, "/playground/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaygroundModels returns the models selectable in the playground, grouped
// by provider.
func (c *Client) PlaygroundModels(ctx context.Context) (*playground.ModelCatalog, error) {
	var out playground.ModelCatalog
	if err := c.get(ctx, "/playground/models", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaygroundPresets returns the reusable prompt templates.
func (c *Client) PlaygroundPresets(ctx context.Context) (*playground.PresetList, error) {
	var out playground.PresetList
	if err := c.get(ctx, "/playground/presets", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
