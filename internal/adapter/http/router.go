package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/lendpool/internal/adapter/http/handler"
	"github.com/iho/lendpool/internal/adapter/http/middleware"
	"github.com/iho/lendpool/internal/infrastructure/metrics"
	"github.com/iho/lendpool/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PoolHandler        *handler.PoolHandler
	LoanHandler        *handler.LoanHandler
	LiquidationHandler *handler.LiquidationHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Metrics            *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Pool
		r.Route("/pool", func(r chi.Router) {
			r.Get("/", cfg.PoolHandler.Stats)
			r.Post("/deposits", cfg.PoolHandler.Deposit)
			r.Post("/withdrawals", cfg.PoolHandler.Withdraw)
			r.Get("/quote/shares", cfg.PoolHandler.QuoteShares)
			r.Get("/quote/amount", cfg.PoolHandler.QuoteAmount)
		})

		// Loans
		r.Route("/loans", func(r chi.Router) {
			r.Post("/borrow", cfg.LoanHandler.Borrow)
			r.Post("/repay", cfg.LoanHandler.Repay)
			r.Post("/repay-all", cfg.LoanHandler.RepayAll)
			r.Get("/{account}", cfg.LoanHandler.Get)
			r.Post("/{account}/accrue", cfg.LoanHandler.Accrue)
			r.Post("/{account}/health", cfg.LoanHandler.Health)
		})

		// Liquidations
		r.Post("/liquidations", cfg.LiquidationHandler.Create)
	})

	return r
}
