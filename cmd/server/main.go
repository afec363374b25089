package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/lendpool/internal/adapter/http"
	"github.com/iho/lendpool/internal/adapter/http/handler"
	postgresRepo "github.com/iho/lendpool/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/lendpool/internal/adapter/repository/redis"
	"github.com/iho/lendpool/internal/infrastructure/config"
	"github.com/iho/lendpool/internal/infrastructure/eventpublisher"
	"github.com/iho/lendpool/internal/infrastructure/logger"
	"github.com/iho/lendpool/internal/infrastructure/metrics"
	"github.com/iho/lendpool/internal/infrastructure/postgres"
	"github.com/iho/lendpool/internal/infrastructure/redis"
	"github.com/iho/lendpool/internal/ratemodel"
	"github.com/iho/lendpool/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	// Run migrations if requested
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	poolRepo := postgresRepo.NewPoolRepository(pool)
	positionRepo := postgresRepo.NewPositionRepository(pool)
	shareRepo := postgresRepo.NewShareRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	assetGateway := postgresRepo.NewAssetGateway(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	statsCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	m := metrics.New()

	// Initialize use case
	poolUC := usecase.NewPoolUseCase(
		txManager,
		poolRepo,
		positionRepo,
		shareRepo,
		outboxRepo,
		assetGateway,
		idGen,
		nil,
		m,
		retrier,
	)

	rateModel, err := buildRateModel(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rate curve configuration")
	}
	if err := poolUC.BindRateModel(rateModel); err != nil {
		log.Fatal().Err(err).Msg("failed to bind rate model")
	}

	// Start outbox publisher
	pubCtx, pubCancel := context.WithCancel(ctx)
	defer pubCancel()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient, ""),
	})
	go func() {
		if err := publisher.Start(pubCtx); err != nil && pubCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Initialize handlers
	poolHandler := handler.NewPoolHandler(poolUC, statsCache)
	loanHandler := handler.NewLoanHandler(poolUC)
	liquidationHandler := handler.NewLiquidationHandler(poolUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PoolHandler:        poolHandler,
		LoanHandler:        loanHandler,
		LiquidationHandler: liquidationHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Metrics:            m,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	pubCancel()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func buildRateModel(cfg *config.Config) (*ratemodel.JumpRate, error) {
	base, err := decimal.NewFromString(cfg.RateBaseAPR)
	if err != nil {
		return nil, fmt.Errorf("base apr: %w", err)
	}
	slope1, err := decimal.NewFromString(cfg.RateSlope1)
	if err != nil {
		return nil, fmt.Errorf("slope1: %w", err)
	}
	slope2, err := decimal.NewFromString(cfg.RateSlope2)
	if err != nil {
		return nil, fmt.Errorf("slope2: %w", err)
	}
	kink, err := decimal.NewFromString(cfg.RateKink)
	if err != nil {
		return nil, fmt.Errorf("kink: %w", err)
	}

	return ratemodel.NewJumpRate(base, slope1, slope2, kink)
}
