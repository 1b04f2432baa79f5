package providers

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// DirectoryProvider looks hospitals up in the public hospital directory
type DirectoryProvider interface {
	// Nearby returns directory records around center, in the directory's order
	Nearby(ctx context.Context, center entities.Location, radiusMeters int) ([]*entities.HospitalRecord, error)

	// GetByID returns a single directory record
	GetByID(ctx context.Context, id string) (*entities.HospitalRecord, error)
}
