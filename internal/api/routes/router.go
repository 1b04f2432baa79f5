package routes

import (
	"net/http"

	"github.com/urgences-proches/backend/internal/api/handlers"
	"github.com/urgences-proches/backend/internal/api/middleware"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler      *handlers.HospitalHandler
	supplementalHandler  *handlers.SupplementalHandler
	accessibilityHandler *handlers.AccessibilityHandler
	attendanceHandler    *handlers.AttendanceHandler
	scoreHandler         *handlers.ScoreHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	supplementalHandler *handlers.SupplementalHandler,
	accessibilityHandler *handlers.AccessibilityHandler,
	attendanceHandler *handlers.AttendanceHandler,
	scoreHandler *handlers.ScoreHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                  http.NewServeMux(),
		hospitalHandler:      hospitalHandler,
		supplementalHandler:  supplementalHandler,
		accessibilityHandler: accessibilityHandler,
		attendanceHandler:    attendanceHandler,
		scoreHandler:         scoreHandler,
		cacheMiddleware:      cacheMiddleware,
		metrics:              metrics,
	}
}

// SetupRoutes registers every route and returns the handler wrapped in middleware
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", handlers.Health)

	r.mux.HandleFunc("GET /api/hospitals/nearby", r.hospitalHandler.Nearby)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)

	r.mux.HandleFunc("GET /api/hospitals/supplemental/search", r.supplementalHandler.Search)
	r.mux.HandleFunc("GET /api/hospitals/supplemental/{placeId}", r.supplementalHandler.GetByPlaceID)

	r.mux.HandleFunc("GET /api/hospitals/accessibility/{placeId}", r.accessibilityHandler.GetAccessibility)

	r.mux.HandleFunc("GET /api/institutions", r.attendanceHandler.ListInstitutions)
	r.mux.HandleFunc("GET /api/attendance", r.attendanceHandler.ListAttendance)

	r.mux.HandleFunc("GET /api/scores", r.scoreHandler.Score)

	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
