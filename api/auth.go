package api

import (
	"context"

	"github.com/Sereen-Kh/ai-deployment-platform/session"
	"github.com/Sereen-Kh/ai-deployment-platform/users"
)

// Login authenticates with email and password and stores the issued token
// pair in the session store.
func (c *Client) Login(ctx context.Context, creds users.Credentials) (*users.AuthenticatedUser, error) {
	var out users.AuthenticatedUser
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	c.store.Set(session.Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken})
	return &out, nil
}

// Register creates a new account and stores the issued token pair, leaving
// the caller logged in as the new user.
func (c *Client) Register(ctx context.Context, reg users.Registration) (*users.AuthenticatedUser, error) {
	var out users.AuthenticatedUser
	if err := c.post(ctx, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	c.store.Set(session.Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken})
	return &out, nil
}

// Me returns the account behind the current session.
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	var out users.User
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe changes the current account's email, display name or password.
// Nil fields in the update are left as they are.
func (c *Client) UpdateMe(ctx context.Context, update users.Update) (*users.User, error) {
	var out users.User
	if err := c.patch(ctx, "/auth/me", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session server-side and clears local credentials. Local
// credentials are dropped even when the server call fails - a dead backend
// must not pin a session open.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	c.store.Clear()
	return err
}

// Refresh forces a refresh exchange regardless of the access token's state.
// Most callers never need this - the client refreshes on 401 automatically.
func (c *Client) Refresh(ctx context.Context) (session.Tokens, error) {
	return c.refreshTokens(ctx)
}
