package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/urgences-proches/backend/internal/adapters/providers/geolocation"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func respondWithJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Int("status", statusCode).Msg("failed to encode response")
	}
}

func respondWithError(ctx context.Context, w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(ctx, w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps err onto an HTTP status. Configuration problems
// are reported without detail; the cause only goes to the log.
func respondWithAppError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := observability.LoggerFromContext(ctx)

	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error().Err(err).Msg("request failed")
		respondWithError(ctx, w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		respondWithError(ctx, w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeValidation:
		respondWithError(ctx, w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeConfiguration:
		logger.Error().Err(err).Msg("configuration error")
		respondWithError(ctx, w, http.StatusInternalServerError, "configuration error")
	case apperrors.ErrorTypeExternal:
		logger.Warn().Err(err).Msg("upstream failure")
		status := http.StatusBadGateway
		if appErr.StatusCode >= 400 && appErr.StatusCode <= 599 {
			status = appErr.StatusCode
		}
		respondWithError(ctx, w, status, appErr.Message)
	default:
		logger.Error().Err(err).Msg("request failed")
		respondWithError(ctx, w, http.StatusInternalServerError, "internal server error")
	}
}

// queryFloat parses an optional float query parameter
func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperrors.NewValidationError(key + " must be a number")
	}
	return &v, nil
}

// queryLocation reads lat and lon. Both or neither must be given.
func queryLocation(r *http.Request) (*entities.Location, error) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		return nil, err
	}
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, apperrors.NewValidationError("lat and lon must be given together")
	}
	loc := entities.Location{Latitude: *lat, Longitude: *lon}
	if !geolocation.ValidLocation(loc) {
		return nil, apperrors.NewValidationError("lat and lon must be a valid coordinate")
	}
	return &loc, nil
}

// queryList accepts both repeated keys and comma separated values
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
