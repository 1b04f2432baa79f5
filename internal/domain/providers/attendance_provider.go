package providers

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// AttendanceProvider reads the real-time emergency attendance feed
type AttendanceProvider interface {
	// ListAttendance returns today's hourly attendance for every institution
	ListAttendance(ctx context.Context) ([]entities.AttendanceRecord, error)

	// ListInstitutions returns the institutions covered by the feed
	ListInstitutions(ctx context.Context) ([]entities.Institution, error)
}
