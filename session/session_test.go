package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sereen-Kh/ai-deployment-platform/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokensEmpty(t *testing.T) {
	require.True(t, session.Tokens{}.Empty())
	require.False(t, session.Tokens{AccessToken: "a"}.Empty())
	require.False(t, session.Tokens{RefreshToken: "r"}.Empty())
}

func TestExpiresWithin(t *testing.T) {
	soon := session.Tokens{AccessToken: signedToken(t, time.Now().Add(10*time.Second))}
	require.True(t, soon.ExpiresWithin(30*time.Second))
	require.False(t, soon.ExpiresWithin(time.Second))

	later := session.Tokens{AccessToken: signedToken(t, time.Now().Add(time.Hour))}
	require.False(t, later.ExpiresWithin(30*time.Second))
}

func TestExpiresWithinUnparseableToken(t *testing.T) {
	opaque := session.Tokens{AccessToken: "not-a-jwt"}
	require.False(t, opaque.ExpiresWithin(time.Hour), "opaque tokens are sent as-is")
	require.False(t, session.Tokens{}.ExpiresWithin(time.Hour))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	require.True(t, store.Get().Empty())

	tokens := session.Tokens{AccessToken: "a1", RefreshToken: "r1"}
	store.Set(tokens)
	require.Equal(t, tokens, store.Get())

	store.Clear()
	require.True(t, store.Get().Empty())
}

func TestMemoryStoreClearNotifiesEverySubscriber(t *testing.T) {
	store := session.NewMemoryStore()

	var first, second int
	store.OnClear(func() { first++ })
	store.OnClear(func() { second++ })

	store.Set(session.Tokens{AccessToken: "a1"})
	require.Zero(t, first, "Set must not notify")

	store.Clear()
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)

	store.Clear()
	require.Equal(t, 2, first, "every Clear notifies, even when already empty")
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)
	require.True(t, store.Get().Empty())

	tokens := session.Tokens{AccessToken: "a1", RefreshToken: "r1"}
	store.Set(tokens)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := session.NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, tokens, reopened.Get())
}

func TestFileStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)
	store.Set(session.Tokens{AccessToken: "a1", RefreshToken: "r1"})

	var cleared int
	store.OnClear(func() { cleared++ })

	store.Clear()
	require.True(t, store.Get().Empty())
	require.Equal(t, 1, cleared)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := session.NewFileStore(path)
	require.Error(t, err)
}
