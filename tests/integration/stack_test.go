package integration

import (
	"net/http"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	adaptershttp "github.com/iho/lendpool/internal/adapter/http"
	"github.com/iho/lendpool/internal/adapter/http/handler"
	postgresrepo "github.com/iho/lendpool/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/lendpool/internal/adapter/repository/redis"
	"github.com/iho/lendpool/internal/usecase"
	"github.com/iho/lendpool/tests/testutil"
)

// stack wires the full service against a real database for router-level tests.
type stack struct {
	router http.Handler
	clock  *testutil.ManualClock
	uc     *usecase.PoolUseCase
	outbox *postgresrepo.OutboxRepository
}

func newStack(t *testing.T, db *testutil.TestDB, model usecase.RateModel) *stack {
	t.Helper()

	pool := db.Pool
	txManager := postgresrepo.NewTxManager(pool)
	poolRepo := postgresrepo.NewPoolRepository(pool)
	positionRepo := postgresrepo.NewPositionRepository(pool)
	shareRepo := postgresrepo.NewShareRepository(pool)
	outboxRepo := postgresrepo.NewOutboxRepository(pool)
	assetGateway := postgresrepo.NewAssetGateway(pool)
	idGen := postgresrepo.NewULIDGenerator()

	clock := testutil.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	uc := usecase.NewPoolUseCase(
		txManager,
		poolRepo,
		positionRepo,
		shareRepo,
		outboxRepo,
		assetGateway,
		idGen,
		clock,
		nil,
		nil,
	)

	if model != nil {
		if err := uc.BindRateModel(model); err != nil {
			t.Fatalf("failed to bind rate model: %v", err)
		}
	}

	mr := miniredis.RunT(t)
	redisClient := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		PoolHandler:        handler.NewPoolHandler(uc, nil),
		LoanHandler:        handler.NewLoanHandler(uc),
		LiquidationHandler: handler.NewLiquidationHandler(uc),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
	})

	return &stack{
		router: router,
		clock:  clock,
		uc:     uc,
		outbox: outboxRepo,
	}
}
