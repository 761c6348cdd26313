package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/qwellan/peerpay/internal/adapter/http/handler"
	"github.com/qwellan/peerpay/internal/adapter/http/middleware"
	"github.com/qwellan/peerpay/internal/infrastructure/auth"
	"github.com/qwellan/peerpay/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransferHandler *handler.TransferHandler
	AccountHandler  *handler.AccountHandler
	PaymentHandler  *handler.PaymentHandler
	UserHandler     *handler.UserHandler
	HealthHandler   *handler.HealthHandler

	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(chimiddleware.Recoverer)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitPerSecond > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transfers", cfg.TransferHandler.Create)

		r.Get("/accounts/{accountID}", cfg.AccountHandler.Get)

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", cfg.PaymentHandler.List)
			r.Get("/{id}", cfg.PaymentHandler.Get)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", cfg.UserHandler.Register)
			r.Post("/login", cfg.UserHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTManager))
				r.Get("/{id}", cfg.UserHandler.Get)
				r.Put("/{id}/balance", cfg.UserHandler.UpdateBalance)
			})
		})
	})

	return r
}
