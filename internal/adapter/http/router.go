package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/handler"
	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/middleware"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BookingHandler   *handler.BookingHandler
	BankLineHandler  *handler.BankLineHandler
	ScenarioHandler  *handler.ScenarioHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Bank statement lines
		r.Route("/bank-lines", func(r chi.Router) {
			r.Get("/{id}", cfg.BankLineHandler.Get)
			r.Get("/{id}/open", cfg.BankLineHandler.Open)
			r.Get("/{id}/entries", cfg.BankLineHandler.ListEntries)
			r.Post("/{id}/allocate", cfg.BookingHandler.Allocate)
			r.Post("/{id}/book", cfg.BookingHandler.Book)
		})

		// Scenarios
		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/", cfg.ScenarioHandler.Create)
			r.Get("/", cfg.ScenarioHandler.List)
			r.Get("/{id}", cfg.ScenarioHandler.Get)
			r.Post("/{id}/activate", cfg.ScenarioHandler.Activate)
			r.Post("/{id}/deactivate", cfg.ScenarioHandler.Deactivate)
		})

		// Audit trail
		r.Get("/audit-logs", cfg.AuditHandler.List)
	})

	return r
}
