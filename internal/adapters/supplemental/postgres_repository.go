package supplemental

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/repositories"
	"github.com/urgences-proches/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

const supplementalTable = "supplemental_hospitals"

// supplementalRow mirrors a row of supplemental_hospitals; specialties is a JSONB
// object using the dataset's specialty keys.
type supplementalRow struct {
	Name         string `db:"name"`
	PlaceID      string `db:"place_id"`
	FireFighter  bool   `db:"fire_fighter"`
	SocialWorker bool   `db:"social_worker"`
	Specialties  []byte `db:"specialties"`
}

// PostgresRepository reads the curated dataset from PostgreSQL. It never writes.
type PostgresRepository struct {
	db *goqu.Database
}

// NewPostgresRepository creates a read-only repository on client
func NewPostgresRepository(client *postgres.Client) repositories.SupplementalRepository {
	return &PostgresRepository{
		db: goqu.Dialect("postgres").DB(client.DB()),
	}
}

// List returns every record ordered by id, the curation order
func (r *PostgresRepository) List(ctx context.Context) ([]entities.SupplementalRecord, error) {
	var rows []supplementalRow
	err := r.db.From(supplementalTable).
		Select("name", "place_id", "fire_fighter", "social_worker", "specialties").
		Order(goqu.C("id").Asc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list supplemental records", err)
	}

	records := make([]entities.SupplementalRecord, 0, len(rows))
	for _, row := range rows {
		rec := entities.SupplementalRecord{
			Name:         row.Name,
			PlaceID:      row.PlaceID,
			FireFighter:  row.FireFighter,
			SocialWorker: row.SocialWorker,
		}
		if len(row.Specialties) > 0 {
			if err := json.Unmarshal(row.Specialties, &rec.Specialties); err != nil {
				return nil, apperrors.NewInternalError(fmt.Sprintf("invalid specialties for %q", row.Name), err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
