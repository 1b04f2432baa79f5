package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/adapters/cache"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", seen)
	assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
}

func TestCacheMiddleware_ServesSecondRequestFromCache(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"institutions":[],"count":0}`))
	})
	handler := NewCacheMiddleware(cache.NewMemoryAdapter(16), nil).Middleware(next)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/institutions", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/institutions", nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCacheMiddleware_SkipsPositionDependentRoutesAndErrors(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/hospitals/accessibility/ChIJbad" {
			w.WriteHeader(http.StatusBadGateway)
		}
		w.Write([]byte(`{}`))
	})
	handler := NewCacheMiddleware(cache.NewMemoryAdapter(16), nil).Middleware(next)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=48.85&lon=2.35", nil))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hospitals/accessibility/ChIJbad", nil))
	}

	assert.Equal(t, 4, calls)
}

func TestCacheMiddleware_KeyIgnoresQueryOrder(t *testing.T) {
	m := NewCacheMiddleware(nil, nil)
	a := m.generateCacheKey(httptest.NewRequest(http.MethodGet, "/api/hospitals/supplemental/search?name=necker&x=1", nil))
	b := m.generateCacheKey(httptest.NewRequest(http.MethodGet, "/api/hospitals/supplemental/search?x=1&name=necker", nil))
	c := m.generateCacheKey(httptest.NewRequest(http.MethodGet, "/api/hospitals/supplemental/search?name=bichat", nil))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheMiddleware_LongestPrefixWins(t *testing.T) {
	m := NewCacheMiddlewareWithConfig(nil, nil, map[string]CacheConfig{
		"/api/hospitals/":              {TTLSeconds: 10, Enabled: true},
		"/api/hospitals/supplemental/": {TTLSeconds: 3600, Enabled: true},
	})

	route, config := m.routeConfig("/api/hospitals/supplemental/ChIJnecker")
	assert.Equal(t, "/api/hospitals/supplemental/", route)
	assert.Equal(t, 3600, config.TTLSeconds)

	_, config = m.routeConfig("/health")
	assert.False(t, config.Enabled)
}

func TestCORSMiddleware(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://urgences.example, https://staging.example")
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/hospitals/nearby", nil)
	req.Header.Set("Origin", "https://staging.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://staging.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestResponseOptimization_ETagAndGzip(t *testing.T) {
	body := `{"count":0,"hospitals":[]}`
	handler := ResponseOptimization(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "private, no-cache, must-revalidate", rec.Header().Get("Cache-Control"))
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}
