package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/okosach/bankd/internal/adapter/http/handler"
	"github.com/okosach/bankd/internal/adapter/http/middleware"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/infrastructure/metrics"
	"github.com/okosach/bankd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	AuthHandler        *handler.AuthHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Metrics            *metrics.Metrics
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything else requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/number/{number}", cfg.AccountHandler.GetByNumber)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Delete("/{id}", cfg.AccountHandler.Delete)
				r.Post("/{id}/suspend", cfg.AccountHandler.Suspend)
				r.Post("/{id}/activate", cfg.AccountHandler.Activate)
				r.Get("/{id}/status", cfg.AccountHandler.GetStatus)
				r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/deposit/{accountID}", cfg.TransactionHandler.Deposit)
				r.Post("/withdraw/{accountID}", cfg.TransactionHandler.Withdraw)
				r.Post("/transfer/{sourceID}/to/{destinationID}", cfg.TransactionHandler.Transfer)
				r.Get("/reference/{reference}", cfg.TransactionHandler.GetByReference)
			})

			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		})
	})

	return r
}
