package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
	"github.com/urgences-proches/backend/pkg/retry"
)

const defaultHTTPTimeout = 10 * time.Second

// OpenDataSoftAdapter implements DirectoryProvider on the OpenDataSoft records API.
// Both URLs already carry the dataset and any static query parameters.
type OpenDataSoftAdapter struct {
	searchURL string
	recordURL string
	client    *http.Client
	retryCfg  retry.Config
}

// NewOpenDataSoftAdapter creates a new directory adapter
func NewOpenDataSoftAdapter(searchURL, recordURL string) providers.DirectoryProvider {
	return NewOpenDataSoftAdapterWithOptions(searchURL, recordURL, nil, retry.UpstreamConfig())
}

// NewOpenDataSoftAdapterWithOptions allows overriding the HTTP client and retry policy (used for tests).
func NewOpenDataSoftAdapterWithOptions(searchURL, recordURL string, httpClient *http.Client, retryCfg retry.Config) *OpenDataSoftAdapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if strings.TrimSpace(recordURL) == "" {
		recordURL = searchURL
	}
	return &OpenDataSoftAdapter{
		searchURL: strings.TrimSpace(searchURL),
		recordURL: strings.TrimSpace(recordURL),
		client:    httpClient,
		retryCfg:  retryCfg,
	}
}

// Nearby returns the hospitals within radiusMeters of center, in the directory's order
func (a *OpenDataSoftAdapter) Nearby(ctx context.Context, center entities.Location, radiusMeters int) ([]*entities.HospitalRecord, error) {
	if a.searchURL == "" {
		return nil, apperrors.NewConfigurationError("DIRECTORY_API_URL is missing")
	}

	reqURL, err := withParams(a.searchURL, map[string]string{
		"geofilter.distance": fmt.Sprintf("%g,%g,%d", center.Latitude, center.Longitude, radiusMeters),
	})
	if err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid DIRECTORY_API_URL: %v", err))
	}

	payload, err := a.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	return payload.toRecords(), nil
}

// GetByID returns the directory record whose recordid is id
func (a *OpenDataSoftAdapter) GetByID(ctx context.Context, id string) (*entities.HospitalRecord, error) {
	if a.recordURL == "" {
		return nil, apperrors.NewConfigurationError("DIRECTORY_RECORD_URL is missing")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewValidationError("hospital id is required")
	}

	reqURL, err := withParams(a.recordURL, map[string]string{
		"rows": "1",
		"q":    "recordid:" + id,
	})
	if err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("invalid DIRECTORY_RECORD_URL: %v", err))
	}

	payload, err := a.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	for _, rec := range payload.toRecords() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", id))
}

func (a *OpenDataSoftAdapter) fetch(ctx context.Context, reqURL string) (*odsResponse, error) {
	var payload odsResponse

	err := retry.DoWithLog(ctx, a.retryCfg, "directory", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to build directory request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return apperrors.NewExternalError("directory request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := apperrors.NewExternalStatusError("directory request failed", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(statusErr)
			}
			return statusErr
		}

		payload = odsResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return retry.Permanent(apperrors.NewExternalError("failed to decode directory response", err))
		}
		if payload.Records == nil {
			return retry.Permanent(apperrors.NewExternalError("invalid directory response: records array not found", nil))
		}
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("directory request failed, retrying")
	})
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

func withParams(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type odsResponse struct {
	Records []odsRecord `json:"records"`
}

type odsRecord struct {
	RecordID string    `json:"recordid"`
	Fields   odsFields `json:"fields"`
}

type odsFields struct {
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Dist         *flexFloat  `json:"dist"`
	MetaGeoPoint []float64   `json:"meta_geo_point"`
	Geometry     *odsGeoJSON `json:"geometry"`
	Lat          *flexFloat  `json:"lat"`
	Lon          *flexFloat  `json:"lon"`
}

type odsGeoJSON struct {
	Coordinates []float64 `json:"coordinates"`
}

// flexFloat accepts both JSON numbers and numeric strings; OpenDataSoft emits dist as a string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// finite reports whether f is present and a real number. "NaN" strings parse but are not usable.
func (f *flexFloat) finite() bool {
	return f != nil && !math.IsNaN(float64(*f)) && !math.IsInf(float64(*f), 0)
}

func (r *odsResponse) toRecords() []*entities.HospitalRecord {
	records := make([]*entities.HospitalRecord, 0, len(r.Records))
	for _, raw := range r.Records {
		rec := &entities.HospitalRecord{
			ID:       raw.RecordID,
			Name:     strings.TrimSpace(raw.Fields.Name),
			Phone:    strings.TrimSpace(raw.Fields.Phone),
			Location: raw.Fields.location(),
		}
		if raw.Fields.Dist.finite() {
			d := float64(*raw.Fields.Dist)
			rec.DistanceMeters = &d
		}
		records = append(records, rec)
	}
	return records
}

// location resolves coordinates from meta_geo_point [lat, lon], then GeoJSON
// geometry [lon, lat], then flat lat/lon fields.
func (f odsFields) location() *entities.Location {
	if len(f.MetaGeoPoint) == 2 {
		return &entities.Location{Latitude: f.MetaGeoPoint[0], Longitude: f.MetaGeoPoint[1]}
	}
	if f.Geometry != nil && len(f.Geometry.Coordinates) == 2 {
		return &entities.Location{Latitude: f.Geometry.Coordinates[1], Longitude: f.Geometry.Coordinates[0]}
	}
	if f.Lat.finite() && f.Lon.finite() && (*f.Lat != 0 || *f.Lon != 0) {
		return &entities.Location{Latitude: float64(*f.Lat), Longitude: float64(*f.Lon)}
	}
	return nil
}
