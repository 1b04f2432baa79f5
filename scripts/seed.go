package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/adapters/supplemental"
	"github.com/urgences-proches/backend/internal/infrastructure/clients/postgres"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	"github.com/urgences-proches/backend/pkg/config"
)

// Loads the curated dataset file (SUPPLEMENTAL_FILE, or the first argument)
// into the supplemental_hospitals table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("seed", cfg.Env)

	path := cfg.Supplemental.FilePath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := supplemental.NewFileRepository(path).List(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to read dataset")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	seeder := supplemental.NewPostgresSeeder(pgClient)
	if err := seeder.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	n, err := seeder.Replace(ctx, records)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed")
	}
	log.Info().Int("records", n).Str("path", path).Msg("supplemental dataset seeded")
}
