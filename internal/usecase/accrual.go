package usecase

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/lendpool/internal/domain"
)

// BindRateModel binds the interest-rate policy to the pool. The binding is a
// one-time configuration step: a second call is rejected, as is a nil model.
func (uc *PoolUseCase) BindRateModel(model RateModel) error {
	if model == nil {
		return domain.ErrInvalidConfiguration
	}

	uc.rateMu.Lock()
	defer uc.rateMu.Unlock()

	if uc.rateModel != nil {
		return domain.ErrAlreadyConfigured
	}
	uc.rateModel = model

	return nil
}

func (uc *PoolUseCase) boundRateModel() RateModel {
	uc.rateMu.Lock()
	defer uc.rateMu.Unlock()
	return uc.rateModel
}

// currentRate performs the policy's mutate-then-read pair. The side-effecting
// utilization update may fail; the rate read must not be blocked by it, so
// the failure is swallowed and counted. With no model bound the rate is zero.
func (uc *PoolUseCase) currentRate(ctx context.Context, pool *domain.Pool) *big.Int {
	model := uc.boundRateModel()
	if model == nil {
		return big.NewInt(0)
	}

	utilization := pool.UtilizationWad()

	if err := model.NotifyUtilization(ctx, utilization); err != nil {
		if uc.metrics != nil {
			uc.metrics.RateNotifyFailures.Inc()
		}
		log.Debug().Err(err).Str("utilization", utilization.String()).
			Msg("rate model utilization update failed")
	}

	return model.RatePerSecond(ctx, utilization)
}

// accrueOne folds elapsed linear interest into a single position and into the
// pool totals. Positions without debt, or with no elapsed time, are left
// untouched. Interest that floors to zero does not advance the accrual clock.
func (uc *PoolUseCase) accrueOne(ctx context.Context, tx Transaction, pool *domain.Pool, pos *domain.Position, now time.Time) (*big.Int, error) {
	if pos == nil || !pos.HasDebt() || pos.ElapsedSeconds(now) == 0 {
		return big.NewInt(0), nil
	}

	rate := uc.currentRate(ctx, pool)
	interest := pos.AccruedInterest(rate, now)
	if interest.Sign() <= 0 {
		return interest, nil
	}

	pos.ApplyInterest(interest, now)
	pool.ApplyInterest(interest)

	if err := uc.positionRepo.Update(ctx, tx, pos); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   pos.Account,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     domain.EventTypeInterestAccrued,
		Payload: map[string]any{
			"account":  pos.Account,
			"interest": interest.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InterestAccruals.Inc()
	}

	return interest, nil
}

// settleAll accrues interest for every position with open debt. The set is
// bounded to active debt holders; the registry of everyone who has ever
// borrowed stays behind in storage.
func (uc *PoolUseCase) settleAll(ctx context.Context, tx Transaction, pool *domain.Pool, now time.Time) error {
	positions, err := uc.positionRepo.ListActiveForUpdate(ctx, tx)
	if err != nil {
		return err
	}

	for _, pos := range positions {
		if _, err := uc.accrueOne(ctx, tx, pool, pos, now); err != nil {
			return err
		}
	}

	return nil
}

// AccrueInterest settles interest for a single account. Accounts without an
// open position are a no-op.
func (uc *PoolUseCase) AccrueInterest(ctx context.Context, account string) (*big.Int, error) {
	var interest *big.Int
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		pos, err := uc.positionRepo.GetForUpdate(txCtx, tx, account)
		if errors.Is(err, domain.ErrPositionNotFound) {
			interest = big.NewInt(0)
			return nil
		}
		if err != nil {
			return err
		}

		interest, err = uc.accrueOne(txCtx, tx, pool, pos, now)
		if err != nil {
			return err
		}

		return uc.poolRepo.Update(txCtx, tx, pool)
	})
	if err != nil {
		uc.countError("accrue", err)
		return nil, err
	}

	return interest, nil
}

// CheckHealth settles interest pool-wide and reports whether account's debt
// is within its borrow limit. The settlement is committed: the check mutates
// the ledger so that the answer reflects fully up-to-date debt everywhere.
func (uc *PoolUseCase) CheckHealth(ctx context.Context, account string) (bool, error) {
	var healthy bool
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		if err := uc.settleAll(txCtx, tx, pool, now); err != nil {
			return err
		}

		healthy, err = uc.positionHealthy(txCtx, tx, pool, account)
		if err != nil {
			return err
		}

		return uc.poolRepo.Update(txCtx, tx, pool)
	})
	if err != nil {
		uc.countError("health_check", err)
		return false, err
	}

	return healthy, nil
}

// positionHealthy is the pure health predicate: debt within the borrow limit
// implied by the account's collateral shares at the current share price.
func (uc *PoolUseCase) positionHealthy(ctx context.Context, tx Transaction, pool *domain.Pool, account string) (bool, error) {
	pos, err := uc.positionRepo.GetForUpdate(ctx, tx, account)
	if errors.Is(err, domain.ErrPositionNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !pos.HasDebt() {
		return true, nil
	}

	balance, err := uc.shareRepo.GetForUpdate(ctx, tx, account)
	if err != nil {
		return false, err
	}

	limit := domain.BorrowLimit(pool.AmountForShares(balance))
	return pos.Principal.Cmp(limit) <= 0, nil
}

// ProjectedHealth estimates health without mutating anything: the account's
// own interest is projected to now, collateral is priced at the current
// share price. Interest other borrowers would contribute to the share price
// is not projected, so the authoritative answer remains CheckHealth.
func (uc *PoolUseCase) ProjectedHealth(ctx context.Context, account string) (bool, error) {
	pos, err := uc.positionRepo.Get(ctx, account)
	if errors.Is(err, domain.ErrPositionNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !pos.HasDebt() {
		return true, nil
	}

	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	balance, err := uc.shareRepo.Get(ctx, account)
	if err != nil {
		return false, err
	}

	projected := cloneBig(pos.Principal)
	if model := uc.boundRateModel(); model != nil {
		rate := model.RatePerSecond(ctx, pool.UtilizationWad())
		projected.Add(projected, pos.AccruedInterest(rate, uc.clock.Now()))
	}

	limit := domain.BorrowLimit(pool.AmountForShares(balance))
	return projected.Cmp(limit) <= 0, nil
}
