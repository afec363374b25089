package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/iho/lendpool/internal/domain"
)

// PoolRepository defines data access for the singleton pool row. GetForUpdate
// takes a row lock that serializes every mutating pool operation, which is
// what makes each operation an atomic, single-writer transaction.
type PoolRepository interface {
	Get(ctx context.Context) (*domain.Pool, error)
	GetForUpdate(ctx context.Context, tx Transaction) (*domain.Pool, error)
	Update(ctx context.Context, tx Transaction, pool *domain.Pool) error
}

// PositionRepository defines data access for borrower positions. Rows are
// never deleted; ListActiveForUpdate returns only positions with open debt.
type PositionRepository interface {
	Get(ctx context.Context, account string) (*domain.Position, error)
	GetForUpdate(ctx context.Context, tx Transaction, account string) (*domain.Position, error)
	EnsureForUpdate(ctx context.Context, tx Transaction, account string, now time.Time) (*domain.Position, error)
	ListActiveForUpdate(ctx context.Context, tx Transaction) ([]*domain.Position, error)
	Update(ctx context.Context, tx Transaction, position *domain.Position) error
}

// ShareRepository defines data access for share balances.
type ShareRepository interface {
	Get(ctx context.Context, account string) (*big.Int, error)
	GetForUpdate(ctx context.Context, tx Transaction, account string) (*big.Int, error)
	Add(ctx context.Context, tx Transaction, account string, amount *big.Int, now time.Time) error
	Sub(ctx context.Context, tx Transaction, account string, amount *big.Int, now time.Time) error
}

// AssetGateway is the trusted all-or-nothing transfer capability moving the
// underlying asset between user accounts and the pool. Pull draws from an
// account into the pool, Push pays out of the pool. Any error aborts the
// enclosing operation.
type AssetGateway interface {
	Pull(ctx context.Context, tx Transaction, from string, amount *big.Int) error
	Push(ctx context.Context, tx Transaction, to string, amount *big.Int) error
}

// RateModel is the pluggable interest-rate policy. NotifyUtilization is the
// side-effecting update fed with the pool's current Wad-scaled utilization;
// its failure is swallowed by the engine. RatePerSecond is the pure read
// returning a Wad-scaled per-second rate such that
// principal * rate * seconds / Wad yields interest in asset units.
type RateModel interface {
	NotifyUtilization(ctx context.Context, utilization *big.Int) error
	RatePerSecond(ctx context.Context, utilization *big.Int) *big.Int
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a whole transaction on transient storage failures.
// Domain rejections are terminal and must not be retried.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Interest accrual depends on elapsed wall
// time, so tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used in production wiring.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Cache provides short-lived read caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
