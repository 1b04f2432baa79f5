package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

func TestRespondWithJSON_LogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	ctx := observability.WithRequestID(context.Background(), "req-nan")
	rec := httptest.NewRecorder()
	respondWithJSON(ctx, rec, http.StatusOK, map[string]float64{"score": math.NaN()})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "failed to encode response", entry["message"])
	assert.Equal(t, "req-nan", entry["request_id"])
	assert.Equal(t, "error", entry["level"])
}

func TestQueryFloat_RejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		req := httptest.NewRequest(http.MethodGet, "/api/scores?distance="+raw, nil)
		v, err := queryFloat(req, "distance")
		assert.Error(t, err, raw)
		assert.Nil(t, v, raw)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/scores?distance=2900", nil)
	v, err := queryFloat(req, "distance")
	require.NoError(t, err)
	assert.Equal(t, 2900.0, *v)
}

func TestQueryLocation_RejectsInvalidCoordinates(t *testing.T) {
	for _, query := range []string{"lat=91&lon=2.35", "lat=48.85&lon=-181", "lat=NaN&lon=0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/hospitals/necker?"+query, nil)
		loc, err := queryLocation(req)
		assert.Error(t, err, query)
		assert.Nil(t, loc, query)
	}
}
