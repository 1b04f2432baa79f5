package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

const (
	googlePlacesURL       = "https://places.googleapis.com/v1/places"
	placeDetailsFields    = "formattedAddress,accessibilityOptions"
	placeDetailsCacheTTL  = 60 * 60 * 24
	defaultHTTPTimeout    = 8 * time.Second
	breakerFailureTrigger = 5
)

// GooglePlacesAdapter implements PlacesProvider on the Google Places v1 API
type GooglePlacesAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
	breaker    *gobreaker.CircuitBreaker
}

// NewGooglePlacesAdapter creates a new places adapter
func NewGooglePlacesAdapter(apiKey string, cache providers.CacheProvider) providers.PlacesProvider {
	return NewGooglePlacesAdapterWithOptions(apiKey, googlePlacesURL, cache, nil)
}

// NewGooglePlacesAdapterWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGooglePlacesAdapterWithOptions(apiKey, baseURL string, cache providers.CacheProvider, httpClient *http.Client) *GooglePlacesAdapter {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googlePlacesURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "google-places",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureTrigger
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &GooglePlacesAdapter{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
		breaker:    breaker,
	}
}

// GetPlaceDetails returns the address and accessibility options of placeID.
// The sentinel place identifier is rejected without any upstream call.
func (a *GooglePlacesAdapter) GetPlaceDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	if a.apiKey == "" {
		return nil, apperrors.NewConfigurationError("PLACES_API_KEY is missing")
	}
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apperrors.NewValidationError("place id is required")
	}
	if !entities.HasUsablePlaceID(placeID) {
		return nil, apperrors.NewValidationError("place id is not assigned")
	}

	cacheKey := "places:v1:details:" + placeID
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var details entities.PlaceDetails
			if err := json.Unmarshal(cached, &details); err == nil {
				return &details, nil
			}
		}
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.fetchDetails(ctx, placeID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.NewExternalStatusError("places provider unavailable", http.StatusServiceUnavailable)
		}
		return nil, err
	}
	details := result.(*entities.PlaceDetails)

	if a.cache != nil {
		if payload, err := json.Marshal(details); err == nil {
			_ = a.cache.Set(ctx, cacheKey, payload, placeDetailsCacheTTL)
		}
	}

	return details, nil
}

func (a *GooglePlacesAdapter) fetchDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	params := url.Values{}
	params.Set("fields", placeDetailsFields)
	params.Set("key", a.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", a.baseURL, url.PathEscape(placeID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build place details request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("place details request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("place_id", placeID).Int("status", resp.StatusCode).Msg("places API returned an error")
		return nil, apperrors.NewExternalStatusError("failed to fetch accessibility data", resp.StatusCode)
	}

	var details entities.PlaceDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, apperrors.NewExternalError("failed to decode place details", err)
	}
	return &details, nil
}
