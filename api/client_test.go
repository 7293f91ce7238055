package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sereen-Kh/ai-deployment-platform/api"
	apperrors "github.com/Sereen-Kh/ai-deployment-platform/internal/errors"
	"github.com/Sereen-Kh/ai-deployment-platform/session"
	"github.com/Sereen-Kh/ai-deployment-platform/users"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken  = "access-token-1"
	testRefreshToken = "refresh-token-1"
	newAccessToken   = "access-token-2"
	newRefreshToken  = "refresh-token-2"
	testUserEmail    = "a@b.com"
	testUserPassword = "x"
)

// testFixture holds a client wired to a test server and an isolated store
type testFixture struct {
	store  *session.MemoryStore
	client *api.Client
	server *httptest.Server
}

func newFixture(t *testing.T, handler http.Handler, options ...api.Option) *testFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	client, err := api.NewClient(server.URL, store, options...)
	require.NoError(t, err)

	return &testFixture{store: store, client: client, server: server}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func userPayload() map[string]interface{} {
	return map[string]interface{}{
		"id":         "user-1",
		"email":      testUserEmail,
		"is_active":  true,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func refreshPayload(access, refresh string) map[string]interface{} {
	return map[string]interface{}{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	}
}

func TestRequestCarriesBearerToken(t *testing.T) {
	var gotAuth string

	fx := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, userPayload())
	}))
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	_, err := fx.client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testAccessToken, gotAuth)
}

func TestRequestWithoutTokenIsUnauthenticated(t *testing.T) {
	var hadAuth bool

	fx := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		writeJSON(t, w, http.StatusOK, userPayload())
	}))

	_, err := fx.client.Me(context.Background())
	require.NoError(t, err)
	require.False(t, hadAuth, "unauthenticated request must not carry an Authorization header")
}

func TestUnauthorizedRefreshesAndReplaysOnce(t *testing.T) {
	var refreshCalls, meCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, testRefreshToken, body.RefreshToken)
		require.Empty(t, r.Header.Get("Authorization"), "refresh call must not carry the access token")

		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		if r.Header.Get("Authorization") != "Bearer "+newAccessToken {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(t, w, http.StatusOK, userPayload())
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	user, err := fx.client.Me(context.Background())
	require.NoError(t, err, "caller must observe the replay's success, never the 401")
	require.Equal(t, testUserEmail, user.Email)

	require.EqualValues(t, 1, refreshCalls, "refresh exchange must run exactly once")
	require.EqualValues(t, 2, meCalls, "original request must be replayed exactly once")
	require.Equal(t, session.Tokens{AccessToken: newAccessToken, RefreshToken: newRefreshToken}, fx.store.Get())
}

func TestRefreshFailureClearsSessionAndNotifiesOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid refresh token"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	var cleared int32
	fx.store.OnClear(func() { atomic.AddInt32(&cleared, 1) })

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	require.ErrorContains(t, err, "Invalid refresh token", "caller must see the refresh error, not the original 401")
	require.NotContains(t, err.Error(), "token expired")

	require.True(t, fx.store.Get().Empty(), "tokens must be cleared after a failed refresh")
	require.EqualValues(t, 1, cleared, "logout notification must fire exactly once")
}

func TestReplayUnauthorizedIsReturnedAsIs(t *testing.T) {
	var refreshCalls, meCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		// The backend rejects even the fresh token. The replay's 401 must be
		// surfaced without another refresh attempt.
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "account disabled"})
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "account disabled", apiErr.Detail)

	require.EqualValues(t, 1, refreshCalls, "a replayed 401 must not re-enter the refresh branch")
	require.EqualValues(t, 2, meCalls)
}

func TestUnauthorizedWithoutRefreshTokenIsReturnedUnchanged(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken}) // no refresh token

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "token expired", apiErr.Detail)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.Zero(t, refreshCalls, "no refresh may be attempted without a refresh token")
}

func TestConcurrentUnauthorizedCoalescesRefresh(t *testing.T) {
	const workers = 8
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		// Hold the exchange open long enough for every worker's first attempt
		// to fail and queue behind it.
		time.Sleep(100 * time.Millisecond)
		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+newAccessToken {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, userPayload())
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.client.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	require.EqualValues(t, 1, refreshCalls, "concurrent 401s must coalesce behind one refresh exchange")
}

func TestLoginThenExpiredTokenScenario(t *testing.T) {
	// Login issues T1; the next request rejects T1's access token; refresh
	// rotates to T2; the replay succeeds. The caller never sees the 401.
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, testUserEmail, creds.Email)
		require.Equal(t, testUserPassword, creds.Password)

		payload := userPayload()
		payload["access_token"] = testAccessToken
		payload["refresh_token"] = testRefreshToken
		writeJSON(t, w, http.StatusOK, payload)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+newAccessToken {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, userPayload())
	})

	fx := newFixture(t, mux)

	logged, err := fx.client.Login(context.Background(), users.Credentials{Email: testUserEmail, Password: testUserPassword})
	require.NoError(t, err)
	require.Equal(t, testAccessToken, logged.AccessToken)
	require.Equal(t, session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken}, fx.store.Get())

	user, err := fx.client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, testUserEmail, user.Email)
	require.EqualValues(t, 1, refreshCalls)
	require.Equal(t, newRefreshToken, fx.store.Get().RefreshToken)
}

func TestRefreshTransportFailureSurfacedWithLogout(t *testing.T) {
	// The refresh exchange dies at the transport level: the caller receives
	// that error, the session is empty, and logout fired once.
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	})

	fx := newFixture(t, mux)
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	var cleared int32
	fx.store.OnClear(func() { atomic.AddInt32(&cleared, 1) })

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	var apiErr *api.Error
	require.False(t, errors.As(err, &apiErr), "a transport failure must not be reported as an API status error")

	require.True(t, fx.store.Get().Empty())
	require.EqualValues(t, 1, cleared)
}

func TestTransportErrorPassedThrough(t *testing.T) {
	fx := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	fx.server.Close()

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.False(t, errors.As(err, &apiErr))
}

func TestApplicationErrorsPassedThrough(t *testing.T) {
	fx := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{"detail": "name must not be empty"})
	}))
	fx.store.Set(session.Tokens{AccessToken: testAccessToken, RefreshToken: testRefreshToken})

	_, err := fx.client.Me(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "name must not be empty", apiErr.Detail)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProactiveRefreshBeforeExpiry(t *testing.T) {
	var refreshCalls, meCalls int32

	// An access token expiring in 10s with a 30s leeway must be refreshed
	// before the request is sent, so the protected route never sees it.
	claims := jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(10 * time.Second).Unix()}
	expiring, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeJSON(t, w, http.StatusOK, refreshPayload(newAccessToken, newRefreshToken))
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		require.Equal(t, "Bearer "+newAccessToken, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, userPayload())
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	store.Set(session.Tokens{AccessToken: expiring, RefreshToken: testRefreshToken})

	client, err := api.NewClient(server.URL, store, api.WithRefreshLeeway(30*time.Second))
	require.NoError(t, err)

	_, err = client.Me(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, refreshCalls)
	require.EqualValues(t, 1, meCalls, "proactive refresh must avoid the 401 round trip entirely")
}
