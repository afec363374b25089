package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/iho/lendpool/internal/domain"
	"github.com/iho/lendpool/internal/usecase/mocks"
)

// underwaterFixture sets up a lender, a borrower at their limit, and a decade
// of unpaid 20% interest, leaving the borrower far past their borrow limit.
func underwaterFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	if err := f.uc.BindRateModel(mocks.NewMockRateModel(ratePerSecond(20))); err != nil {
		t.Fatalf("bind: %v", err)
	}
	f.deposit(t, "lender", 1000)
	f.deposit(t, "borrower", 200)
	if _, err := f.uc.Borrow(ctx, "borrower", big.NewInt(126)); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	f.clock.Advance(10 * 365 * 24 * time.Hour)
	return f
}

func TestPoolUseCase_Liquidate(t *testing.T) {
	t.Run("healthy borrower cannot be liquidated", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.deposit(t, "lender", 1000)
		f.deposit(t, "borrower", 300)
		if _, err := f.uc.Borrow(ctx, "borrower", big.NewInt(100)); err != nil {
			t.Fatalf("borrow: %v", err)
		}

		_, err := f.uc.Liquidate(ctx, "liquidator", "borrower", big.NewInt(50))
		if !errors.Is(err, domain.ErrBorrowerHealthy) {
			t.Errorf("expected ErrBorrowerHealthy, got %v", err)
		}
	})

	t.Run("unknown borrower rejected", func(t *testing.T) {
		f := newFixture(t)
		f.deposit(t, "lender", 1000)

		_, err := f.uc.Liquidate(context.Background(), "liquidator", "nobody", big.NewInt(50))
		if !errors.Is(err, domain.ErrNothingToRepay) {
			t.Errorf("expected ErrNothingToRepay, got %v", err)
		}
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Liquidate(context.Background(), "liquidator", "borrower", big.NewInt(0))
		if !errors.Is(err, domain.ErrZeroAmount) {
			t.Errorf("expected ErrZeroAmount, got %v", err)
		}
	})

	t.Run("partial liquidation pays the bonus in shares", func(t *testing.T) {
		f := underwaterFixture(t)
		ctx := context.Background()

		f.assets.Fund("liquidator", big.NewInt(500))

		// Debt settles to 377 inside the call; repay half of it.
		result, err := f.uc.Liquidate(ctx, "liquidator", "borrower", big.NewInt(188))
		if err != nil {
			t.Fatalf("liquidate: %v", err)
		}
		if result.Repaid.String() != "188" {
			t.Errorf("repaid = %s, want 188", result.Repaid)
		}
		// floor(188 * 1.05) = 197 of value; 163 shares at the settled price.
		if result.SeizedShares.String() != "163" {
			t.Errorf("seized shares = %s, want 163", result.SeizedShares)
		}
		if result.SeizedValue.String() != "197" {
			t.Errorf("seized value = %s, want 197", result.SeizedValue)
		}

		liquidatorShares, _ := f.uc.ShareBalance(ctx, "liquidator")
		if liquidatorShares.String() != "163" {
			t.Errorf("liquidator shares = %s, want 163", liquidatorShares)
		}
		borrowerShares, _ := f.uc.ShareBalance(ctx, "borrower")
		if borrowerShares.String() != "37" {
			t.Errorf("borrower shares = %s, want 37", borrowerShares)
		}

		// Share transfer leaves the totals alone.
		stats, _ := f.uc.Stats(ctx)
		if stats.TotalShares.String() != "1200" {
			t.Errorf("total shares = %s, want 1200", stats.TotalShares)
		}
		f.checkBalanceInvariant(t)

		events := f.outbox.EventsOfType(domain.EventTypeLiquidated)
		if len(events) != 1 {
			t.Fatalf("expected 1 liquidated event, got %d", len(events))
		}
		if events[0].Payload["liquidator"] != "liquidator" || events[0].Payload["repaid"] != "188" {
			t.Errorf("unexpected event payload: %v", events[0].Payload)
		}
	})

	t.Run("liquidation is profitable for the liquidator", func(t *testing.T) {
		f := underwaterFixture(t)
		ctx := context.Background()

		f.assets.Fund("liquidator", big.NewInt(500))
		before := f.assets.Balance("liquidator")

		result, err := f.uc.Liquidate(ctx, "liquidator", "borrower", big.NewInt(188))
		if err != nil {
			t.Fatalf("liquidate: %v", err)
		}

		// Cash out the seized shares; the payout must beat the repayment.
		withdrawal, err := f.uc.Withdraw(ctx, "liquidator", result.SeizedShares)
		if err != nil {
			t.Fatalf("withdraw seized shares: %v", err)
		}
		if withdrawal.Amount.Cmp(result.Repaid) <= 0 {
			t.Errorf("payout %s not above repayment %s", withdrawal.Amount, result.Repaid)
		}

		after := f.assets.Balance("liquidator")
		if after.Cmp(before) <= 0 {
			t.Errorf("liquidator balance %s -> %s, expected profit", before, after)
		}
	})

	t.Run("seizure capped at borrower share balance", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		// 0.1% per second compounds nothing, but linearly it buries the
		// borrower far beyond what their shares can cover.
		if err := f.uc.BindRateModel(mocks.NewMockRateModel(big.NewInt(1_000_000_000_000_000))); err != nil {
			t.Fatalf("bind: %v", err)
		}
		f.deposit(t, "lender", 1000)
		f.deposit(t, "borrower", 200)
		if _, err := f.uc.Borrow(ctx, "borrower", big.NewInt(133)); err != nil {
			t.Fatalf("borrow: %v", err)
		}
		f.clock.Advance(10_000_000 * time.Second)

		// Debt settles to 1,330,133.
		f.assets.Fund("liquidator", big.NewInt(2_000_000))
		result, err := f.uc.Liquidate(ctx, "liquidator", "borrower", big.NewInt(2_000_000))
		if err != nil {
			t.Fatalf("liquidate: %v", err)
		}
		if result.Repaid.String() != "1330133" {
			t.Errorf("repaid = %s, want 1330133", result.Repaid)
		}
		// All 200 borrower shares seized, worth far less than the bonus
		// would demand.
		if result.SeizedShares.String() != "200" {
			t.Errorf("seized shares = %s, want 200", result.SeizedShares)
		}
		if result.SeizedValue.String() != "221867" {
			t.Errorf("seized value = %s, want 221867", result.SeizedValue)
		}

		borrowerShares, _ := f.uc.ShareBalance(ctx, "borrower")
		if borrowerShares.Sign() != 0 {
			t.Errorf("borrower shares = %s, want 0", borrowerShares)
		}
		f.checkBalanceInvariant(t)
	})

	t.Run("repeated liquidation until healthy", func(t *testing.T) {
		f := underwaterFixture(t)
		ctx := context.Background()

		f.assets.Fund("liquidator", big.NewInt(1000))

		// Bite off the debt until the remainder is covered by what little
		// collateral is left or the borrower turns healthy.
		for i := 0; i < 10; i++ {
			_, err := f.uc.Liquidate(ctx, "liquidator", "borrower", big.NewInt(60))
			if errors.Is(err, domain.ErrBorrowerHealthy) || errors.Is(err, domain.ErrNothingToRepay) {
				return
			}
			if err != nil {
				t.Fatalf("liquidation round %d: %v", i, err)
			}
			f.checkBalanceInvariant(t)
		}
		t.Fatal("borrower never stabilized")
	})
}
