package usecase

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/iho/lendpool/internal/domain"
)

// LiquidationResult reports the outcome of a liquidation.
type LiquidationResult struct {
	Liquidator   string
	Borrower     string
	Repaid       *big.Int
	SeizedShares *big.Int
	SeizedValue  *big.Int
}

// Liquidate lets liquidator repay up to amount of an unhealthy borrower's
// debt and seize the borrower's shares worth 1.05 times the repayment at the
// current share price. The seizure is capped at the borrower's full share
// balance, so deeply underwater positions pay out less than the bonus rate.
// Interest is settled pool-wide first; a borrower back within their limit
// after settlement cannot be liquidated.
func (uc *PoolUseCase) Liquidate(ctx context.Context, liquidator, borrower string, amount *big.Int) (*LiquidationResult, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrZeroAmount
	}

	start := uc.clock.Now()

	var result *LiquidationResult
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		if err := uc.settleAll(txCtx, tx, pool, now); err != nil {
			return err
		}

		pos, err := uc.positionRepo.GetForUpdate(txCtx, tx, borrower)
		if errors.Is(err, domain.ErrPositionNotFound) {
			return domain.ErrNothingToRepay
		}
		if err != nil {
			return err
		}
		if !pos.HasDebt() {
			return domain.ErrNothingToRepay
		}

		balance, err := uc.shareRepo.GetForUpdate(txCtx, tx, borrower)
		if err != nil {
			return err
		}

		limit := domain.BorrowLimit(pool.AmountForShares(balance))
		if pos.Principal.Cmp(limit) <= 0 {
			return domain.ErrBorrowerHealthy
		}

		repaid := minBig(amount, pos.Principal)

		seizedValue := domain.SeizeValue(repaid)
		seizedShares := pool.SharesForAmount(seizedValue)
		if seizedShares.Cmp(balance) > 0 {
			seizedShares = cloneBig(balance)
		}
		seizedValue = pool.AmountForShares(seizedShares)

		pos.SubPrincipal(repaid, now)
		pool.SubBorrow(repaid)

		// Shares change hands, pool totals stay put.
		if err := uc.shareRepo.Sub(txCtx, tx, borrower, seizedShares, now); err != nil {
			return err
		}
		if err := uc.shareRepo.Add(txCtx, tx, liquidator, seizedShares, now); err != nil {
			return err
		}

		if err := uc.positionRepo.Update(txCtx, tx, pos); err != nil {
			return err
		}
		if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   borrower,
			AggregateType: domain.AggregateTypeLoan,
			EventType:     domain.EventTypeLiquidated,
			Payload: map[string]any{
				"liquidator":   liquidator,
				"borrower":     borrower,
				"repaid":       repaid.String(),
				"seized_value": seizedValue.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := uc.assets.Pull(txCtx, tx, liquidator, repaid); err != nil {
			return err
		}

		result = &LiquidationResult{
			Liquidator:   liquidator,
			Borrower:     borrower,
			Repaid:       repaid,
			SeizedShares: seizedShares,
			SeizedValue:  seizedValue,
		}
		uc.observePool(pool)

		return nil
	})
	if err != nil {
		uc.countError("liquidate", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Liquidations.Inc()
		uc.metrics.OperationDuration.WithLabelValues("liquidate").Observe(time.Since(start).Seconds())
	}

	return result, nil
}
