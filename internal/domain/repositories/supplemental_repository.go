package repositories

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// SupplementalRepository lists the curated supplemental dataset.
// Records are returned in a stable, source-defined order.
type SupplementalRepository interface {
	List(ctx context.Context) ([]entities.SupplementalRecord, error)
}
