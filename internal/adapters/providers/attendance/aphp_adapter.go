package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
	"github.com/urgences-proches/backend/pkg/retry"
)

const (
	attendanceCacheTTL   = 5 * 60
	institutionsCacheTTL = 24 * 60 * 60
	defaultHTTPTimeout   = 10 * time.Second
)

// APHPAdapter implements AttendanceProvider on the AP-HP open data feeds
type APHPAdapter struct {
	attendanceURL   string
	institutionsURL string
	client          *http.Client
	cache           providers.CacheProvider
	retryCfg        retry.Config
}

// NewAPHPAdapter creates a new attendance adapter
func NewAPHPAdapter(attendanceURL, institutionsURL string, cache providers.CacheProvider) providers.AttendanceProvider {
	return NewAPHPAdapterWithOptions(attendanceURL, institutionsURL, cache, nil, retry.UpstreamConfig())
}

// NewAPHPAdapterWithOptions allows overriding the HTTP client and retry policy (used for tests).
func NewAPHPAdapterWithOptions(attendanceURL, institutionsURL string, cache providers.CacheProvider, httpClient *http.Client, retryCfg retry.Config) *APHPAdapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &APHPAdapter{
		attendanceURL:   strings.TrimSpace(attendanceURL),
		institutionsURL: strings.TrimSpace(institutionsURL),
		client:          httpClient,
		cache:           cache,
		retryCfg:        retryCfg,
	}
}

// ListAttendance returns today's hourly attendance for every institution
func (a *APHPAdapter) ListAttendance(ctx context.Context) ([]entities.AttendanceRecord, error) {
	if a.attendanceURL == "" {
		return nil, apperrors.NewConfigurationError("ATTENDANCE_API_URL is missing")
	}

	var records []entities.AttendanceRecord
	if err := a.getCached(ctx, "attendance:v1:records", attendanceCacheTTL, a.attendanceURL, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListInstitutions returns the institutions of the directory dataset, names upper-cased
func (a *APHPAdapter) ListInstitutions(ctx context.Context) ([]entities.Institution, error) {
	if a.institutionsURL == "" {
		return nil, apperrors.NewConfigurationError("INSTITUTIONS_API_URL is missing")
	}

	var payload institutionsResponse
	if err := a.getCached(ctx, "attendance:v1:institutions", institutionsCacheTTL, a.institutionsURL, &payload); err != nil {
		return nil, err
	}
	if payload.Records == nil {
		return nil, apperrors.NewExternalError("invalid institutions response: records array not found", nil)
	}

	institutions := make([]entities.Institution, 0, len(payload.Records))
	for _, rec := range payload.Records {
		institutions = append(institutions, entities.Institution{
			Name: strings.ToUpper(rec.Fields.Name),
			Code: rec.RecordID,
			// the directory dataset has no pediatric flag
			IsPediatric: false,
		})
	}
	return institutions, nil
}

// getCached decodes the body at reqURL into out, going through the cache first
func (a *APHPAdapter) getCached(ctx context.Context, key string, ttl int, reqURL string, out interface{}) error {
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, key); err == nil && len(cached) > 0 {
			if err := json.Unmarshal(cached, out); err == nil {
				return nil
			}
		}
	}

	var body json.RawMessage
	err := retry.DoWithLog(ctx, a.retryCfg, "attendance", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to build attendance request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return apperrors.NewExternalError("attendance request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := apperrors.NewExternalStatusError("attendance request failed", resp.StatusCode)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(statusErr)
			}
			return statusErr
		}

		body = nil
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return retry.Permanent(apperrors.NewExternalError("failed to decode attendance response", err))
		}
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("attendance request failed, retrying")
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewExternalError("unexpected attendance payload", err)
	}

	if a.cache != nil {
		_ = a.cache.Set(ctx, key, body, ttl)
	}
	return nil
}

type institutionsResponse struct {
	Records []struct {
		RecordID string `json:"recordid"`
		Fields   struct {
			Name string `json:"name"`
		} `json:"fields"`
	} `json:"records"`
}
