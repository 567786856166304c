package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/travel-assistant/internal/config"
)

func TestProxy_RoutesByPrefix(t *testing.T) {
	authBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "auth")
		w.WriteHeader(http.StatusOK)
	}))
	defer authBackend.Close()

	orderBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "order")
		w.WriteHeader(http.StatusOK)
	}))
	defer orderBackend.Close()

	proxy, err := NewProxy([]config.Route{
		{Prefix: "/api/auth", Target: authBackend.URL},
		{Prefix: "/api/order", Target: orderBackend.URL},
	}, newNoopLogger())
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		wantBackend string
	}{
		{name: "auth route", path: "/api/auth/validate", wantBackend: "auth"},
		{name: "order route", path: "/api/order/list", wantBackend: "order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			proxy.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBackend, rec.Header().Get("X-Backend"))
		})
	}
}

func TestProxy_FirstPrefixWins(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "first")
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "second")
	}))
	defer second.Close()

	proxy, err := NewProxy([]config.Route{
		{Prefix: "/api", Target: first.URL},
		{Prefix: "/api/order", Target: second.URL},
	}, newNoopLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/order/list", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	assert.Equal(t, "first", rec.Header().Get("X-Backend"))
}

func TestProxy_GeneratesRequestID(t *testing.T) {
	var gotRequestID string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
	}))
	defer backend.Close()

	proxy, err := NewProxy([]config.Route{
		{Prefix: "/api", Target: backend.URL},
	}, newNoopLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)
	assert.NotEmpty(t, gotRequestID)

	// Присланный клиентом идентификатор не перезаписывается.
	req = httptest.NewRequest(http.MethodGet, "/api/order", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	proxy.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "client-supplied", gotRequestID)
}

func TestProxy_NoRoute(t *testing.T) {
	proxy, err := NewProxy(nil, newNoopLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no route for path")
}

func TestProxy_DownstreamUnavailable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	proxy, err := NewProxy([]config.Route{
		{Prefix: "/api", Target: backend.URL},
	}, newNoopLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
