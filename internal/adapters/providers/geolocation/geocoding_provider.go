package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

const (
	googleGeocodeURL       = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// ErrNoResults is returned when the geocoder knows no place for an address
var ErrNoResults = errors.New("no results for address")

// GoogleGeocoder resolves addresses to coordinates using the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeocoder creates a new Google geocoder.
func NewGoogleGeocoder(apiKey string, cache providers.CacheProvider) *GoogleGeocoder {
	return NewGoogleGeocoderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeocoderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleGeocoderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) *GoogleGeocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeocoder{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode converts an address to coordinates.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (entities.Location, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return entities.Location{}, apperrors.NewValidationError("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var loc entities.Location
			if err := json.Unmarshal(cached, &loc); err == nil && (loc.Latitude != 0 || loc.Longitude != 0) {
				return loc, nil
			}
		}
	}

	resp, err := g.doGeocodeRequest(ctx, url.Values{"address": []string{trimmed}})
	if err != nil {
		return entities.Location{}, err
	}
	if len(resp.Results) == 0 {
		return entities.Location{}, ErrNoResults
	}

	result := resp.Results[0]
	loc := entities.Location{
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
	}

	if g.cache != nil {
		if payload, err := json.Marshal(loc); err == nil {
			_ = g.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}

	return loc, nil
}

func (g *GoogleGeocoder) doGeocodeRequest(ctx context.Context, params url.Values) (*googleGeocodeResponse, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewConfigurationError("GEOLOCATION_API_KEY is missing")
	}

	params.Set("key", g.apiKey)
	params.Set("region", "fr")
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalStatusError("geocode request failed", resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return &googleGeocodeResponse{Status: payload.Status}, nil
	default:
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("geocode request failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("geocode request failed: %s", payload.Status)
	}

	return &payload, nil
}

// Geocoder resolves a free-text address to a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entities.Location, error)
}

// AddressPositionProvider locates the user from a free-text address.
type AddressPositionProvider struct {
	geocoder Geocoder
	address  string
}

// NewAddressPositionProvider creates a position provider for address
func NewAddressPositionProvider(geocoder Geocoder, address string) *AddressPositionProvider {
	return &AddressPositionProvider{geocoder: geocoder, address: address}
}

// CurrentPosition geocodes the address. Failures are reported as a PositionError.
func (p *AddressPositionProvider) CurrentPosition(ctx context.Context) (entities.Location, error) {
	loc, err := p.geocoder.Geocode(ctx, p.address)
	if err == nil {
		return loc, nil
	}

	reason := providers.PositionPositionUnavailable
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = providers.PositionTimeout
	}
	return entities.Location{}, &providers.PositionError{Reason: reason, Err: err}
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
