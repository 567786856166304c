package gatewayapp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/travel-assistant/internal/config"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/jwt"
)

const testSecretKey = "test_secret_key_1234567890_abcdef"

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWTSecretKey = testSecretKey
	cfg.TokenTTL = time.Hour
	cfg.Header = "Authorization"
	cfg.BearerPrefix = "Bearer "
	cfg.Gateway.PublicPaths = config.DefaultPublicPaths
	return cfg
}

func newTestRouter(t *testing.T, proxy http.Handler) http.Handler {
	t.Helper()
	maker, err := jwt.NewMaker(testSecretKey, time.Hour)
	require.NoError(t, err)
	return newRouter(maker, newTestConfig(), proxy, newNoopLogger())
}

func TestRouter_MetricsWithoutToken(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Скрейпер без токена дотягивается до /metrics.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"code":401`)
}

func TestRouter_ProtectedPathWithoutToken(t *testing.T) {
	var proxied bool
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/order/list", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.False(t, proxied)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing credentials")
}

func TestRouter_ValidTokenReachesProxy(t *testing.T) {
	maker, err := jwt.NewMaker(testSecretKey, time.Hour)
	require.NoError(t, err)
	token, err := maker.GenerateToken(42, "alice", "USER")
	require.NoError(t, err)

	var gotUserID string
	router := newRouter(maker, newTestConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-Id")
	}), newNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/order/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", gotUserID)
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	maker, err := jwt.NewMaker(testSecretKey, time.Hour)
	require.NoError(t, err)
	token, err := maker.GenerateToken(1, "alice", "USER")
	require.NoError(t, err)

	router := newRouter(maker, newTestConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("downstream blew up")
	}), newNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/order/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Паника гасится внутри цепочки, процесс и тест остаются живы.
	require.NotPanics(t, func() {
		router.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
