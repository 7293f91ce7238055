package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sereen-Kh/ai-deployment-platform/playground"
	"github.com/pkg/errors"
)

// StreamChat runs one streaming chat turn over the playground websocket. The
// request is sent as a single JSON frame; every event frame the server sends
// back is passed to handle in order until a "complete" or "error" frame
// arrives. Returning an error from handle aborts the session.
//
// The websocket carries the current access token at dial time. Streaming
// sessions do not participate in the 401 refresh protocol - an expired token
// fails the dial and the caller retries after any regular API call has
// refreshed the session.
func (c *Client) StreamChat(ctx context.Context, req playground.ChatRequest, handle func(playground.StreamEvent) error) error {
	req.Stream = true

	header := http.Header{}
	if token := c.store.Get().AccessToken; token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.websocketURL("/playground/ws/chat"), header)
	if err != nil {
		if resp != nil {
			return errors.Wrapf(err, "[Client.StreamChat] dial rejected with status %d", resp.StatusCode)
		}
		return errors.Wrap(err, "[Client.StreamChat] dialing websocket")
	}
	defer conn.Close()

	// Cancellation closes the connection, unblocking ReadJSON.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(req); err != nil {
		return errors.Wrap(err, "[Client.StreamChat] sending request frame")
	}

	for {
		var event playground.StreamEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "[Client.StreamChat] reading event frame")
		}

		if err := handle(event); err != nil {
			return err
		}

		switch event.Type {
		case playground.EventComplete:
			return nil
		case playground.EventError:
			return errors.Errorf("[Client.StreamChat] stream failed: %s", event.Error)
		}
	}
}

// websocketURL resolves a websocket path against the configured websocket
// base URL, deriving one from the HTTP base URL when none was set.
func (c *Client) websocketURL(path string) string {
	if c.wsURL != "" {
		return c.wsURL + path
	}

	base := c.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + path
}
