package supplemental

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

const createSupplementalTable = `CREATE TABLE IF NOT EXISTS supplemental_hospitals (
	id            SERIAL PRIMARY KEY,
	name          TEXT    NOT NULL,
	place_id      TEXT    NOT NULL DEFAULT '',
	fire_fighter  BOOLEAN NOT NULL DEFAULT FALSE,
	social_worker BOOLEAN NOT NULL DEFAULT FALSE,
	specialties   JSONB   NOT NULL DEFAULT '{}'::jsonb
)`

// PostgresSeeder loads the curated dataset into supplemental_hospitals
type PostgresSeeder struct {
	db *goqu.Database
}

// NewPostgresSeeder creates a seeder on client
func NewPostgresSeeder(client *postgres.Client) *PostgresSeeder {
	return &PostgresSeeder{db: goqu.Dialect("postgres").DB(client.DB())}
}

// EnsureSchema creates the table when missing
func (s *PostgresSeeder) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSupplementalTable); err != nil {
		return apperrors.NewInternalError("failed to create supplemental table", err)
	}
	return nil
}

// Replace swaps the table content for records in one transaction.
// Insertion order becomes the curation order List returns.
func (s *PostgresSeeder) Replace(ctx context.Context, records []entities.SupplementalRecord) (int, error) {
	rows := make([]interface{}, 0, len(records))
	for _, rec := range records {
		specialties, err := json.Marshal(rec.Specialties)
		if err != nil {
			return 0, apperrors.NewInternalError(fmt.Sprintf("failed to encode specialties for %q", rec.Name), err)
		}
		rows = append(rows, supplementalRow{
			Name:         rec.Name,
			PlaceID:      rec.PlaceID,
			FireFighter:  rec.FireFighter,
			SocialWorker: rec.SocialWorker,
			Specialties:  specialties,
		})
	}

	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete(supplementalTable).Executor().ExecContext(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.Insert(supplementalTable).Rows(rows...).Executor().ExecContext(ctx)
		return err
	})
	if err != nil {
		return 0, apperrors.NewInternalError("failed to seed supplemental records", err)
	}
	return len(rows), nil
}
