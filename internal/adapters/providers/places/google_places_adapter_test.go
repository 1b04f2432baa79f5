package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/adapters/cache"
	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func TestGooglePlacesAdapter_GetPlaceDetails(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/places/real-id", r.URL.Path)
		assert.Equal(t, "formattedAddress,accessibilityOptions", r.URL.Query().Get("fields"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"formattedAddress": "149 Rue de Sèvres, 75015 Paris",
			"accessibilityOptions": {"wheelchairAccessibleEntrance": true, "wheelchairAccessibleParking": true}}`))
	}))
	defer server.Close()

	adapter := NewGooglePlacesAdapterWithOptions("test-key", server.URL+"/places", cache.NewMemoryAdapter(16), server.Client())

	for i := 0; i < 2; i++ {
		details, err := adapter.GetPlaceDetails(context.Background(), "real-id")
		require.NoError(t, err)
		assert.Equal(t, "149 Rue de Sèvres, 75015 Paris", details.FormattedAddress)
		require.NotNil(t, details.Accessibility)
		assert.Equal(t, 2, details.Accessibility.Count())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second lookup is served from cache")
}

func TestGooglePlacesAdapter_SentinelNeverCallsUpstream(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	adapter := NewGooglePlacesAdapterWithOptions("test-key", server.URL, nil, server.Client())

	_, err := adapter.GetPlaceDetails(context.Background(), entities.SentinelPlaceID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = adapter.GetPlaceDetails(context.Background(), " ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGooglePlacesAdapter_MissingKey(t *testing.T) {
	adapter := NewGooglePlacesAdapterWithOptions("", "", nil, nil)

	_, err := adapter.GetPlaceDetails(context.Background(), "real-id")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
}

func TestGooglePlacesAdapter_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewGooglePlacesAdapterWithOptions("test-key", server.URL, nil, server.Client())

	_, err := adapter.GetPlaceDetails(context.Background(), "unknown-id")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestGooglePlacesAdapter_BreakerOpensAfterFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewGooglePlacesAdapterWithOptions("test-key", server.URL, nil, server.Client())

	for i := 0; i < breakerFailureTrigger; i++ {
		_, err := adapter.GetPlaceDetails(context.Background(), "flaky-id")
		require.Error(t, err)
	}

	_, err := adapter.GetPlaceDetails(context.Background(), "flaky-id")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
	assert.Equal(t, int32(breakerFailureTrigger), atomic.LoadInt32(&calls))
}
