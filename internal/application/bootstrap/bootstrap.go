// Package bootstrap wires configuration into adapters and services. Both the
// HTTP server and the command line tool start from here.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/adapters/cache"
	"github.com/urgences-proches/backend/internal/adapters/providers/attendance"
	"github.com/urgences-proches/backend/internal/adapters/providers/directory"
	"github.com/urgences-proches/backend/internal/adapters/providers/geolocation"
	"github.com/urgences-proches/backend/internal/adapters/providers/places"
	"github.com/urgences-proches/backend/internal/adapters/supplemental"
	"github.com/urgences-proches/backend/internal/application/services"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/domain/repositories"
	"github.com/urgences-proches/backend/internal/infrastructure/clients/postgres"
	"github.com/urgences-proches/backend/internal/infrastructure/clients/redis"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	"github.com/urgences-proches/backend/pkg/config"
)

// Container holds the wired adapters and services
type Container struct {
	Cache        providers.CacheProvider
	Directory    providers.DirectoryProvider
	Places       providers.PlacesProvider
	Attendance   providers.AttendanceProvider
	Geocoder     *geolocation.GoogleGeocoder
	Curated      repositories.SupplementalRepository
	Supplemental *services.SupplementalService
	Matcher      *services.NameMatcher
	Ranker       *services.RecommendationService
	Pipeline     *services.EnrichmentPipeline
	Traffic      *services.TrafficService
	Positions    *services.PositionService
	Search       *services.HospitalSearchService

	closers []func() error
}

// New wires every collaborator from cfg. metrics may be nil.
func New(cfg *config.Config, metrics *observability.Metrics) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{}

	c.Cache = c.newCacheProvider(cfg)

	repo, err := c.newSupplementalRepository(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Curated = repo

	if cfg.Places.APIKey == "" {
		log.Warn().Msg("PLACES_API_KEY is not set, hospital searches will report a configuration error")
	}

	c.Directory = directory.NewOpenDataSoftAdapter(cfg.Directory.APIURL, cfg.Directory.RecordURL)
	c.Places = places.NewGooglePlacesAdapterWithOptions(cfg.Places.APIKey, cfg.Places.BaseURL, c.Cache, nil)
	c.Attendance = attendance.NewAPHPAdapter(cfg.Attendance.APIURL, cfg.Attendance.InstitutionsURL, c.Cache)
	if cfg.Geolocation.APIKey != "" {
		c.Geocoder = geolocation.NewGoogleGeocoder(cfg.Geolocation.APIKey, c.Cache)
	}

	c.Matcher = services.NewNameMatcher(services.ParseMatchStrategy(cfg.Supplemental.MatchStrategy))
	c.Supplemental = services.NewSupplementalService(repo, c.Matcher)
	c.Ranker = services.NewRecommendationService()
	c.Pipeline = services.NewEnrichmentPipeline(c.Directory, c.Supplemental, c.Places, cfg.Directory.RadiusMeters, metrics)
	c.Traffic = services.NewTrafficService(c.Attendance, c.Matcher)
	c.Positions = services.NewPositionService(
		entities.Location{Latitude: cfg.Geolocation.DefaultLatitude, Longitude: cfg.Geolocation.DefaultLongitude},
		cfg.Geolocation.Timeout,
	)
	c.Search = services.NewHospitalSearchService(c.Directory, c.Pipeline, c.Traffic, c.Positions, c.Ranker)

	log.Info().
		Str("cache", cfg.Cache.Provider).
		Str("supplemental", cfg.Supplemental.Source).
		Str("match_strategy", string(c.Matcher.Strategy())).
		Int("radius_meters", cfg.Directory.RadiusMeters).
		Msg("services wired")

	return c, nil
}

// Close releases the database and cache connections
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// newCacheProvider prefers Redis and falls back to the in-process LRU
func (c *Container) newCacheProvider(cfg *config.Config) providers.CacheProvider {
	if cfg.Cache.Provider == "redis" {
		client, err := redis.NewClient(&cfg.Redis)
		if err == nil {
			c.closers = append(c.closers, client.Close)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("using Redis cache")
			return cache.NewRedisAdapter(client)
		}
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
	}
	return cache.NewMemoryAdapter(cfg.Cache.Size)
}

func (c *Container) newSupplementalRepository(cfg *config.Config) (repositories.SupplementalRepository, error) {
	switch cfg.Supplemental.Source {
	case "postgres":
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("supplemental repository: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		return supplemental.NewPostgresRepository(client), nil
	default:
		return supplemental.NewFileRepository(cfg.Supplemental.FilePath), nil
	}
}
