// Package api is the Go client for the AI deployment platform REST API.
//
// The client applies bearer authentication transparently and recovers from a
// single class of failure without surfacing it to callers: an expired or
// invalid access token. On a 401 it performs one coordinated refresh exchange,
// replays the failed request once with the fresh access token, and returns the
// replay's outcome as if it were the first attempt. When the refresh exchange
// itself fails the session store is cleared, subscribers are notified, and the
// caller receives the refresh error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/Sereen-Kh/ai-deployment-platform/internal/errors"
	"github.com/Sereen-Kh/ai-deployment-platform/session"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	contentTypeJSON = "application/json"

	defaultTimeout = 30 * time.Second

	// refreshKey coalesces concurrent refresh exchanges: refresh tokens are
	// single-use, so a second exchange racing the first would invalidate
	// whichever pair lost.
	refreshKey = "refresh"

	maxErrorBody = 64 * 1024
)

// Client issues authenticated requests against the platform API.
//
// A Client is safe for concurrent use. It borrows the current token pair from
// the session store on every request and is the sole writer to the store after
// a refresh exchange.
type Client struct {
	baseURL      string
	wsURL        string
	httpClient   *http.Client
	dialer       *websocket.Dialer
	store        session.Store
	log          zerolog.Logger
	leeway       time.Duration
	newRequestID func() string

	refreshGroup singleflight.Group
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithWebSocketURL overrides the websocket base URL. By default it is derived
// from the HTTP base URL by swapping the scheme.
func WithWebSocketURL(u string) Option {
	return func(c *Client) {
		c.wsURL = strings.TrimRight(u, "/")
	}
}

// WithRefreshLeeway enables proactive refresh: when the access token's expiry
// falls within d, the client refreshes before sending rather than waiting for
// the 401. Zero (the default) keeps the purely reactive behaviour.
func WithRefreshLeeway(d time.Duration) Option {
	return func(c *Client) {
		c.leeway = d
	}
}

// WithRequestIDFunc sets the request ID generator (primarily for testing).
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.newRequestID = fn
	}
}

// NewClient creates a platform API client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string, store session.Store, options ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("[NewClient] session store is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		dialer:       websocket.DefaultDialer,
		store:        store,
		log:          zerolog.Nop(),
		newRequestID: func() string { return uuid.New().String() },
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// call is the replayable snapshot of one outbound request: everything needed
// to resend it unchanged except for updated credentials.
type call struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	requestID   string
}

// do sends a request and runs the 401 recovery pipeline. The pipeline is
// straight-line rather than a retry loop: refresh once, replay once, and
// return whatever the replay produced. A replayed request that fails
// authentication again is surfaced as-is, which makes re-entering the refresh
// branch structurally impossible.
func (c *Client) do(ctx context.Context, cl *call, out interface{}) error {
	cl.requestID = c.newRequestID()

	resp, err := c.send(ctx, cl, c.bearerToken(ctx))
	if err != nil {
		return apperrors.Wrapf(err, "[Client.do] %s %s", cl.method, cl.path)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return c.finish(resp, out)
	}

	authErr := c.readError(resp)
	if c.store.Get().RefreshToken == "" {
		return authErr
	}

	c.log.Debug().
		Str("request_id", cl.requestID).
		Str("path", cl.path).
		Msg("access token rejected, refreshing session")

	tokens, err := c.refreshTokens(ctx)
	if err != nil {
		return err
	}

	replay, err := c.send(ctx, cl, tokens.AccessToken)
	if err != nil {
		return apperrors.Wrapf(err, "[Client.do] replaying %s %s", cl.method, cl.path)
	}
	return c.finish(replay, out)
}

// bearerToken returns the access token for the next request, refreshing ahead
// of expiry when a leeway is configured. A failed proactive refresh falls
// through to whatever the store now holds; the reactive path remains the
// authority.
func (c *Client) bearerToken(ctx context.Context) string {
	tokens := c.store.Get()
	if c.leeway > 0 && tokens.RefreshToken != "" && tokens.ExpiresWithin(c.leeway) {
		if fresh, err := c.refreshTokens(ctx); err == nil {
			return fresh.AccessToken
		}
		return c.store.Get().AccessToken
	}
	return tokens.AccessToken
}

// refreshTokens exchanges the stored refresh token for a new pair. Concurrent
// callers coalesce behind a single in-flight exchange and share its outcome.
// On failure the store is cleared and OnClear subscribers fire exactly once
// per exchange, then every waiter receives the exchange's error wrapped in
// ErrSessionExpired.
func (c *Client) refreshTokens(ctx context.Context) (session.Tokens, error) {
	v, err, _ := c.refreshGroup.Do(refreshKey, func() (interface{}, error) {
		refreshToken := c.store.Get().RefreshToken
		if refreshToken == "" {
			// A concurrent exchange already failed and cleared the session.
			return nil, fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, apperrors.ErrNoRefreshToken)
		}

		tokens, err := c.exchangeRefreshToken(ctx, refreshToken)
		if err != nil {
			c.store.Clear()
			c.log.Err(err).Msg("Refresh exchange failed, session closed")
			return nil, fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, err)
		}

		c.store.Set(tokens)
		return tokens, nil
	})
	if err != nil {
		return session.Tokens{}, err
	}
	return v.(session.Tokens), nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// exchangeRefreshToken performs the refresh call itself. It is unauthenticated
// with respect to the access token; the refresh token travels in the body.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (session.Tokens, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return session.Tokens{}, errors.Wrap(err, "[Client.exchangeRefreshToken] encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return session.Tokens{}, errors.Wrap(err, "[Client.exchangeRefreshToken] building request")
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Tokens{}, errors.Wrap(err, "[Client.exchangeRefreshToken] posting refresh")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return session.Tokens{}, c.readError(resp)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return session.Tokens{}, errors.Wrap(err, "[Client.exchangeRefreshToken] decoding response")
	}
	return session.Tokens{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}, nil
}

// send builds and issues one HTTP attempt for the descriptor. The bearer token
// is the only thing that differs between an original attempt and its replay.
func (c *Client) send(ctx context.Context, cl *call, bearer string) (*http.Response, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.send] building %s %s", cl.method, cl.path)
	}

	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("X-Request-ID", cl.requestID)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.httpClient.Do(req)
}

// finish decodes a settled response into out, or converts a non-2xx status
// into an *Error. Responses with no body of interest are drained so the
// underlying connection can be reused.
func (c *Client) finish(resp *http.Response, out interface{}) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.readError(resp)
	}

	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, "[Client.finish] decoding response")
	}
	return nil
}

// readError converts an error response into an *Error, preferring the
// backend's {"detail": ...} payload and falling back to the raw body.
func (c *Client) readError(resp *http.Response) error {
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	detail := strings.TrimSpace(string(data))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Detail:     detail,
		RequestID:  resp.Header.Get("X-Request-ID"),
	}
}

// Convenience verbs over do.

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, &call{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	cl := &call{method: http.MethodPost, path: path}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "[Client.post] encoding %s body", path)
		}
		cl.body = body
		cl.contentType = contentTypeJSON
	}
	return c.do(ctx, cl, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "[Client.patch] encoding %s body", path)
	}
	return c.do(ctx, &call{method: http.MethodPatch, path: path, body: body, contentType: contentTypeJSON}, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, &call{method: http.MethodDelete, path: path}, out)
}

// postRaw sends a pre-encoded body (multipart uploads). The payload is
// buffered up front so the descriptor stays replayable after a 401.
func (c *Client) postRaw(ctx context.Context, path, contentType string, body []byte, out interface{}) error {
	return c.do(ctx, &call{method: http.MethodPost, path: path, body: body, contentType: contentType}, out)
}
