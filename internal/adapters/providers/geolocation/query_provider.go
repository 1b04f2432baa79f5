package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
)

// QueryPositionProvider serves a position the client already acquired and sent
// as request parameters. GeoError carries the client's geolocation failure, if any.
type QueryPositionProvider struct {
	Latitude  *float64
	Longitude *float64
	GeoError  string
}

// CurrentPosition returns the client-supplied coordinate or a PositionError
func (q QueryPositionProvider) CurrentPosition(ctx context.Context) (entities.Location, error) {
	if q.GeoError != "" {
		return entities.Location{}, &providers.PositionError{Reason: ParseReason(q.GeoError)}
	}
	if q.Latitude == nil || q.Longitude == nil {
		return entities.Location{}, &providers.PositionError{Reason: providers.PositionPositionUnavailable}
	}

	loc := entities.Location{Latitude: *q.Latitude, Longitude: *q.Longitude}
	if !ValidLocation(loc) {
		return entities.Location{}, &providers.PositionError{
			Reason: providers.PositionPositionUnavailable,
			Err:    fmt.Errorf("coordinate out of range: %f,%f", loc.Latitude, loc.Longitude),
		}
	}
	return loc, nil
}

// ParseReason maps a client geolocation error to a reason. It accepts the
// reason names and the numeric codes browsers report (1, 2, 3).
func ParseReason(value string) providers.PositionErrorReason {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "permission-denied", "permission_denied", "denied":
		return providers.PositionPermissionDenied
	case "3", "timeout":
		return providers.PositionTimeout
	default:
		return providers.PositionPositionUnavailable
	}
}
