package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

const httpCacheKeyPrefix = "http:v1:cache:"

// CacheConfig holds cache configuration for specific routes
type CacheConfig struct {
	TTLSeconds int
	Enabled    bool
}

// CacheMiddleware caches successful responses of routes that do not depend
// on the caller's position
type CacheMiddleware struct {
	cache    providers.CacheProvider
	metrics  *observability.Metrics
	prefixes []string
	configs  map[string]CacheConfig
}

// DefaultCacheRoutes are the cached path prefixes. Nearby searches are never
// cached: they depend on the caller's position and live traffic.
func DefaultCacheRoutes() map[string]CacheConfig {
	return map[string]CacheConfig{
		"/api/institutions":             {TTLSeconds: 86400, Enabled: true},
		"/api/attendance":               {TTLSeconds: 300, Enabled: true},
		"/api/hospitals/supplemental/":  {TTLSeconds: 3600, Enabled: true},
		"/api/hospitals/accessibility/": {TTLSeconds: 86400, Enabled: true},
	}
}

// NewCacheMiddleware creates a cache middleware for the default routes
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics) *CacheMiddleware {
	return NewCacheMiddlewareWithConfig(cache, metrics, DefaultCacheRoutes())
}

// NewCacheMiddlewareWithConfig creates a cache middleware with custom route config
func NewCacheMiddlewareWithConfig(cache providers.CacheProvider, metrics *observability.Metrics, configs map[string]CacheConfig) *CacheMiddleware {
	prefixes := make([]string, 0, len(configs))
	for prefix := range configs {
		prefixes = append(prefixes, prefix)
	}
	// Longest prefix wins
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	return &CacheMiddleware{
		cache:    cache,
		metrics:  metrics,
		prefixes: prefixes,
		configs:  configs,
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		route, config := m.routeConfig(r.URL.Path)
		if !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		cacheKey := m.generateCacheKey(r)

		if cached, err := m.cache.Get(ctx, cacheKey); err == nil {
			observability.RecordCacheHit(ctx, m.metrics, route)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		observability.RecordCacheMiss(ctx, m.metrics, route)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode != http.StatusOK || recorder.body.Len() == 0 {
			return
		}
		if err := m.cache.Set(ctx, cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
			logger.Warn().Err(err).Str("route", route).Msg("failed to cache response")
			return
		}
		logger.Debug().Str("route", route).Int("ttl_seconds", config.TTLSeconds).Msg("cached response")
	})
}

func (m *CacheMiddleware) routeConfig(path string) (string, CacheConfig) {
	if config, ok := m.configs[path]; ok {
		return path, config
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(path, prefix) {
			return prefix, m.configs[prefix]
		}
	}
	return "", CacheConfig{}
}

// generateCacheKey hashes method, path and the sorted query
func (m *CacheMiddleware) generateCacheKey(r *http.Request) string {
	key := r.Method + ":" + r.URL.Path
	if query := r.URL.Query(); len(query) > 0 {
		key += "?" + query.Encode()
	}

	hash := sha256.Sum256([]byte(key))
	return httpCacheKeyPrefix + hex.EncodeToString(hash[:])
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write tees the body to the client and the cache buffer
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
