package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/adapters/providers/geolocation"
	"github.com/urgences-proches/backend/internal/api/handlers"
	"github.com/urgences-proches/backend/internal/api/middleware"
	"github.com/urgences-proches/backend/internal/api/routes"
	"github.com/urgences-proches/backend/internal/application/bootstrap"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	"github.com/urgences-proches/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			observability.EnableLogExport(cfg.OTEL.ServiceName)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	container, err := bootstrap.New(cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire services")
	}
	defer container.Close()

	router := routes.NewRouter(
		handlers.NewHospitalHandler(container.Search, geocoderOrNil(container)),
		handlers.NewSupplementalHandler(container.Supplemental),
		handlers.NewAccessibilityHandler(container.Places),
		handlers.NewAttendanceHandler(container.Attendance),
		handlers.NewScoreHandler(container.Ranker),
		middleware.NewCacheMiddleware(container.Cache, metrics),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

// geocoderOrNil keeps a nil *GoogleGeocoder from becoming a non-nil interface
func geocoderOrNil(c *bootstrap.Container) geolocation.Geocoder {
	if c.Geocoder == nil {
		return nil
	}
	return c.Geocoder
}
