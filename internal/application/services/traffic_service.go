package services

import (
	"context"
	"time"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// TrafficService derives per-hospital congestion levels from the attendance feed
type TrafficService struct {
	attendance providers.AttendanceProvider
	matcher    *NameMatcher
	location   *time.Location
	now        func() time.Time
}

// NewTrafficService creates a new traffic service. Hours are read in Europe/Paris time.
func NewTrafficService(attendance providers.AttendanceProvider, matcher *NameMatcher) *TrafficService {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		loc = time.Local
	}
	return &TrafficService{
		attendance: attendance,
		matcher:    matcher,
		location:   loc,
		now:        time.Now,
	}
}

// LevelsFor returns the current congestion level of each hospital found in the
// feed, keyed by hospital id. A feed failure yields an empty map.
func (s *TrafficService) LevelsFor(ctx context.Context, hospitals []*entities.EnrichedHospital) map[string]float64 {
	levels := make(map[string]float64)
	if s == nil || s.attendance == nil || len(hospitals) == 0 {
		return levels
	}

	records, err := s.attendance.ListAttendance(ctx)
	if err != nil {
		event := observability.LoggerFromContext(ctx).Warn()
		if apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
			event = observability.LoggerFromContext(ctx).Debug()
		}
		event.Err(err).Msg("attendance feed unavailable, traffic stays neutral")
		return levels
	}

	latest := latestByInstitution(records)
	hour := s.now().In(s.location).Hour()

	for _, h := range hospitals {
		rec, _, ok := FindMatch(s.matcher, h.Name, latest, func(r *entities.AttendanceRecord) string { return r.InstitutionName })
		if !ok {
			continue
		}
		if level, ok := rec.CongestionAt(hour); ok {
			levels[h.ID] = level
		}
	}
	return levels
}

// latestByInstitution keeps the most recent day of each institution, in feed order
func latestByInstitution(records []entities.AttendanceRecord) []*entities.AttendanceRecord {
	index := make(map[string]int, len(records))
	out := make([]*entities.AttendanceRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		key := rec.InstitutionCode
		if key == "" {
			key = rec.InstitutionName
		}
		if j, ok := index[key]; ok {
			if rec.Day > out[j].Day {
				out[j] = rec
			}
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}
