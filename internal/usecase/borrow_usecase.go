package usecase

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/iho/lendpool/internal/domain"
)

// BorrowResult reports the outcome of a borrow.
type BorrowResult struct {
	Account   string
	Amount    *big.Int
	Principal *big.Int
}

// Borrow draws amount from the pool against the caller's share collateral.
// The position is settled first so the limit check runs against up-to-date
// debt, then the new total principal is checked against two thirds of the
// collateral's current asset value and against the pool's cash on hand.
func (uc *PoolUseCase) Borrow(ctx context.Context, account string, amount *big.Int) (*BorrowResult, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrZeroAmount
	}

	start := uc.clock.Now()

	var result *BorrowResult
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		pos, err := uc.positionRepo.EnsureForUpdate(txCtx, tx, account, now)
		if err != nil {
			return err
		}
		if _, err := uc.accrueOne(txCtx, tx, pool, pos, now); err != nil {
			return err
		}

		balance, err := uc.shareRepo.GetForUpdate(txCtx, tx, account)
		if err != nil {
			return err
		}

		limit := domain.BorrowLimit(pool.AmountForShares(balance))
		newPrincipal := new(big.Int).Add(pos.Principal, amount)
		if newPrincipal.Cmp(limit) > 0 {
			return domain.ErrBorrowLimitExceeded
		}
		if pool.AvailableLiquidity().Cmp(amount) < 0 {
			return domain.ErrInsufficientLiquidity
		}

		pos.AddPrincipal(amount, now)
		pool.AddBorrow(amount)

		if err := uc.positionRepo.Update(txCtx, tx, pos); err != nil {
			return err
		}
		if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account,
			AggregateType: domain.AggregateTypeLoan,
			EventType:     domain.EventTypeBorrowed,
			Payload: map[string]any{
				"account":   account,
				"amount":    amount.String(),
				"principal": pos.Principal.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := uc.assets.Push(txCtx, tx, account, amount); err != nil {
			return err
		}

		result = &BorrowResult{
			Account:   account,
			Amount:    cloneBig(amount),
			Principal: cloneBig(pos.Principal),
		}
		uc.observePool(pool)

		return nil
	})
	if err != nil {
		uc.countError("borrow", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Borrows.Inc()
		uc.metrics.OperationDuration.WithLabelValues("borrow").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// RepayResult reports the outcome of a repayment. Interest is paid down
// before principal.
type RepayResult struct {
	Account       string
	Repaid        *big.Int
	InterestPaid  *big.Int
	PrincipalPaid *big.Int
	Remaining     *big.Int
}

// Repay pays down the caller's debt by up to amount, capped at the debt
// outstanding after settlement. A zero amount settles interest and returns
// without moving assets, even for accounts with no position. A positive
// amount against a debt-free account is rejected.
func (uc *PoolUseCase) Repay(ctx context.Context, account string, amount *big.Int) (*RepayResult, error) {
	if amount == nil {
		return nil, domain.ErrZeroAmount
	}
	if amount.Sign() < 0 {
		return nil, domain.ErrZeroAmount
	}
	return uc.repay(ctx, account, amount, false)
}

// RepayAll settles interest and pays off the caller's entire debt.
func (uc *PoolUseCase) RepayAll(ctx context.Context, account string) (*RepayResult, error) {
	return uc.repay(ctx, account, nil, true)
}

func (uc *PoolUseCase) repay(ctx context.Context, account string, amount *big.Int, all bool) (*RepayResult, error) {
	start := uc.clock.Now()

	var result *RepayResult
	err := uc.withTx(ctx, func(txCtx context.Context, tx Transaction) error {
		pool, err := uc.poolRepo.GetForUpdate(txCtx, tx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()

		pos, err := uc.positionRepo.GetForUpdate(txCtx, tx, account)
		if errors.Is(err, domain.ErrPositionNotFound) {
			if !all && amount.Sign() == 0 {
				result = &RepayResult{
					Account:       account,
					Repaid:        big.NewInt(0),
					InterestPaid:  big.NewInt(0),
					PrincipalPaid: big.NewInt(0),
					Remaining:     big.NewInt(0),
				}
				return nil
			}
			return domain.ErrNothingToRepay
		}
		if err != nil {
			return err
		}

		principalBefore := cloneBig(pos.Principal)
		if _, err := uc.accrueOne(txCtx, tx, pool, pos, now); err != nil {
			return err
		}

		if !all && amount.Sign() == 0 {
			if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
				return err
			}
			result = &RepayResult{
				Account:       account,
				Repaid:        big.NewInt(0),
				InterestPaid:  big.NewInt(0),
				PrincipalPaid: big.NewInt(0),
				Remaining:     cloneBig(pos.Principal),
			}
			return nil
		}

		if !pos.HasDebt() {
			return domain.ErrNothingToRepay
		}

		debt := cloneBig(pos.Principal)
		repaid := debt
		if !all {
			repaid = minBig(amount, debt)
		}

		// Interest settled above is the slice of debt beyond the pre-accrual
		// principal; the payment covers it first.
		accrued := new(big.Int).Sub(debt, principalBefore)
		if accrued.Sign() < 0 {
			accrued = big.NewInt(0)
		}
		interestPaid := minBig(repaid, accrued)
		principalPaid := new(big.Int).Sub(repaid, interestPaid)

		pos.SubPrincipal(repaid, now)
		pool.SubBorrow(repaid)

		if err := uc.positionRepo.Update(txCtx, tx, pos); err != nil {
			return err
		}
		if err := uc.poolRepo.Update(txCtx, tx, pool); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account,
			AggregateType: domain.AggregateTypeLoan,
			EventType:     domain.EventTypeRepaid,
			Payload: map[string]any{
				"account":        account,
				"amount":         repaid.String(),
				"interest_paid":  interestPaid.String(),
				"principal_paid": principalPaid.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}

		if err := uc.assets.Pull(txCtx, tx, account, repaid); err != nil {
			return err
		}

		result = &RepayResult{
			Account:       account,
			Repaid:        repaid,
			InterestPaid:  interestPaid,
			PrincipalPaid: principalPaid,
			Remaining:     cloneBig(pos.Principal),
		}
		uc.observePool(pool)

		return nil
	})
	if err != nil {
		uc.countError("repay", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Repayments.Inc()
		uc.metrics.OperationDuration.WithLabelValues("repay").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// PositionInfo is a read-only snapshot of a borrower's standing.
type PositionInfo struct {
	Account       string
	Principal     *big.Int
	LastAccrual   time.Time
	ShareBalance  *big.Int
	BorrowLimit   *big.Int
	MaxBorrowable *big.Int
}

// Position returns account's debt and collateral standing without settling
// interest. Accounts that never borrowed get a zero position. MaxBorrowable
// is additionally capped by the pool's cash on hand.
func (uc *PoolUseCase) Position(ctx context.Context, account string) (*PositionInfo, error) {
	pool, err := uc.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	principal := big.NewInt(0)
	var lastAccrual time.Time
	pos, err := uc.positionRepo.Get(ctx, account)
	if err != nil && !errors.Is(err, domain.ErrPositionNotFound) {
		return nil, err
	}
	if pos != nil {
		principal = cloneBig(pos.Principal)
		lastAccrual = pos.LastAccrual
	}

	balance, err := uc.shareRepo.Get(ctx, account)
	if err != nil {
		return nil, err
	}

	limit := domain.BorrowLimit(pool.AmountForShares(balance))
	headroom := new(big.Int).Sub(limit, principal)
	if headroom.Sign() < 0 {
		headroom = big.NewInt(0)
	}

	return &PositionInfo{
		Account:       account,
		Principal:     principal,
		LastAccrual:   lastAccrual,
		ShareBalance:  balance,
		BorrowLimit:   limit,
		MaxBorrowable: minBig(headroom, pool.AvailableLiquidity()),
	}, nil
}

// MaxBorrowable returns how much more account could borrow right now.
func (uc *PoolUseCase) MaxBorrowable(ctx context.Context, account string) (*big.Int, error) {
	info, err := uc.Position(ctx, account)
	if err != nil {
		return nil, err
	}
	return info.MaxBorrowable, nil
}
