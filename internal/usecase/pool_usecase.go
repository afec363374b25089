package usecase

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/infrastructure/metrics"
)

// PoolUseCase is the lending pool orchestrator. Every mutating operation runs
// in a single transaction that locks the pool row first, settles interest for
// the accounts the operation depends on, applies its state change, then moves
// the underlying asset; outbound transfers happen after the ledger is
// updated, inbound transfers settle after all bookkeeping is finalized.
type PoolUseCase struct {
	txManager    TransactionManager
	poolRepo     PoolRepository
	positionRepo PositionRepository
	shareRepo    ShareRepository
	outboxRepo   OutboxRepository
	assets       AssetGateway
	idGen        IDGenerator
	clock        Clock
	metrics      *metrics.Metrics
	retrier      Retrier

	rateMu    sync.Mutex
	rateModel RateModel
}

// NewPoolUseCase creates a new PoolUseCase. The rate model is bound
// separately, exactly once, via BindRateModel.
func NewPoolUseCase(
	txManager TransactionManager,
	poolRepo PoolRepository,
	positionRepo PositionRepository,
	shareRepo ShareRepository,
	outboxRepo OutboxRepository,
	assets AssetGateway,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
	retrier Retrier,
) *PoolUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &PoolUseCase{
		txManager:    txManager,
		poolRepo:     poolRepo,
		positionRepo: positionRepo,
		shareRepo:    shareRepo,
		outboxRepo:   outboxRepo,
		assets:       assets,
		idGen:        idGen,
		clock:        clock,
		metrics:      metrics,
		retrier:      retrier,
	}
}

// withTx runs fn inside a transaction with a timeout, committing on success.
// With a retrier configured the whole transaction is re-run on transient
// storage failures; domain rejections are permanent and surface unchanged.
func (uc *PoolUseCase) withTx(ctx context.Context, fn func(txCtx context.Context, tx Transaction) error) error {
	run := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if uc.retrier != nil {
		return uc.retrier.Retry(ctx, run)
	}

	return run()
}

// DepositResult reports the outcome of a deposit.
type DepositResult struct {
	Account string
	Amount  *big.Int
	Shares  *big.Int
}

// Deposit mints shares for amount at the current share price and pulls the
// asset from the depositor. The full active set is settled first so the
// depositor pays the up-to-date share price.
func (uc *PoolUseCase) Deposit(ctx context.Context, account string, amount *big.Int) (*DepositResult, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrZeroAmount
	}

	start := uc.clock.Now()

	var result *DepositResult
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		if err := uc.settleAll(txCtx, tx, pool, now); err != nil {
			return err
		}

		shares := pool.Deposit(amount)
		if err := uc.shareRepo.Add(txCtx, tx, account, shares, now); err != nil {
			return err
		}
		if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account,
			AggregateType: domain.AggregateTypePool,
			EventType:     domain.EventTypeDeposited,
			Payload: map[string]any{
				"account": account,
				"amount":  amount.String(),
				"shares":  shares.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := uc.assets.Pull(txCtx, tx, account, amount); err != nil {
			return err
		}

		result = &DepositResult{Account: account, Amount: cloneBig(amount), Shares: shares}
		uc.observePool(pool)

		return nil
	})
	if err != nil {
		uc.countError("deposit", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Deposits.Inc()
		uc.metrics.OperationDuration.WithLabelValues("deposit").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// WithdrawResult reports the outcome of a withdrawal.
type WithdrawResult struct {
	Account string
	Shares  *big.Int
	Amount  *big.Int
}

// Withdraw burns sharesToBurn and pays out the corresponding asset value.
// The full active set is settled first so departing shareholders collect
// their portion of all interest earned up to now.
func (uc *PoolUseCase) Withdraw(ctx context.Context, account string, sharesToBurn *big.Int) (*WithdrawResult, error) {
	if sharesToBurn == nil || sharesToBurn.Sign() <= 0 {
		return nil, domain.ErrZeroAmount
	}
	return uc.withdraw(ctx, account, sharesToBurn, false)
}

// WithdrawAll burns the caller's entire share balance.
func (uc *PoolUseCase) WithdrawAll(ctx context.Context, account string) (*WithdrawResult, error) {
	return uc.withdraw(ctx, account, nil, true)
}

func (uc *PoolUseCase) withdraw(ctx context.Context, account string, sharesToBurn *big.Int, all bool) (*WithdrawResult, error) {
	start := uc.clock.Now()

	var result *WithdrawResult
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		if err := uc.settleAll(txCtx, tx, pool, now); err != nil {
			return err
		}

		balance, err := uc.shareRepo.GetForUpdate(txCtx, tx, account)
		if err != nil {
			return err
		}

		burn := sharesToBurn
		if all {
			burn = balance
		}
		if burn.Sign() <= 0 {
			return domain.ErrZeroAmount
		}
		if balance.Cmp(burn) < 0 {
			return domain.ErrInsufficientShares
		}

		amount := pool.AmountForShares(burn)
		if pool.AvailableLiquidity().Cmp(amount) < 0 {
			return domain.ErrInsufficientLiquidity
		}

		pool.Burn(burn, amount)
		if err := uc.shareRepo.Sub(txCtx, tx, account, burn, now); err != nil {
			return err
		}
		if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account,
			AggregateType: domain.AggregateTypePool,
			EventType:     domain.EventTypeWithdrawn,
			Payload: map[string]any{
				"account": account,
				"shares":  burn.String(),
				"amount":  amount.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		// Ledger state is final before the asset leaves the pool.
		if err := uc.assets.Push(txCtx, tx, account, amount); err != nil {
			return err
		}

		result = &WithdrawResult{Account: account, Shares: cloneBig(burn), Amount: amount}
		uc.observePool(pool)

		return nil
	})
	if err != nil {
		uc.countError("withdraw", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Withdrawals.Inc()
		uc.metrics.OperationDuration.WithLabelValues("withdraw").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// PoolStats is a read-only snapshot of the pool totals.
type PoolStats struct {
	TotalDeposited     *big.Int
	TotalShares        *big.Int
	TotalBorrowed      *big.Int
	AvailableLiquidity *big.Int
	UtilizationWad     *big.Int
}

// Stats returns the current pool totals without locking.
func (uc *PoolUseCase) Stats(ctx context.Context) (*PoolStats, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &PoolStats{
		TotalDeposited:     pool.TotalDeposited,
		TotalShares:        pool.TotalShares,
		TotalBorrowed:      pool.TotalBorrowed,
		AvailableLiquidity: pool.AvailableLiquidity(),
		UtilizationWad:     pool.UtilizationWad(),
	}, nil
}

// Utilization returns the pool's Wad-scaled utilization.
func (uc *PoolUseCase) Utilization(ctx context.Context) (*big.Int, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.UtilizationWad(), nil
}

// AvailableLiquidity returns the cash the pool currently holds.
func (uc *PoolUseCase) AvailableLiquidity(ctx context.Context) (*big.Int, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.AvailableLiquidity(), nil
}

// QuoteSharesForAmount converts an asset amount to shares at the current
// share price, without settling interest first.
func (uc *PoolUseCase) QuoteSharesForAmount(ctx context.Context, amount *big.Int) (*big.Int, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.SharesForAmount(amount), nil
}

// QuoteAmountForShares converts shares to an asset amount at the current
// share price, without settling interest first.
func (uc *PoolUseCase) QuoteAmountForShares(ctx context.Context, shares *big.Int) (*big.Int, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.AmountForShares(shares), nil
}

// ShareBalance returns account's share balance.
func (uc *PoolUseCase) ShareBalance(ctx context.Context, account string) (*big.Int, error) {
	return uc.shareRepo.Get(ctx, account)
}

func (uc *PoolUseCase) observePool(pool *domain.Pool) {
	if uc.metrics == nil {
		return
	}
	u, _ := new(big.Float).Quo(
		new(big.Float).SetInt(pool.UtilizationWad()),
		new(big.Float).SetInt(domain.Wad),
	).Float64()
	uc.metrics.PoolUtilization.Set(u)
}

func (uc *PoolUseCase) countError(op string, err error) {
	if uc.metrics == nil || err == nil || errors.Is(err, context.Canceled) {
		return
	}
	uc.metrics.OperationErrors.WithLabelValues(op, errorLabel(err)).Inc()
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrZeroAmount):
		return "zero_amount"
	case errors.Is(err, domain.ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, domain.ErrInsufficientLiquidity):
		return "insufficient_liquidity"
	case errors.Is(err, domain.ErrBorrowLimitExceeded):
		return "borrow_limit_exceeded"
	case errors.Is(err, domain.ErrNothingToRepay):
		return "nothing_to_repay"
	case errors.Is(err, domain.ErrBorrowerHealthy):
		return "borrower_healthy"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}
