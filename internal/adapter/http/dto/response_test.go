package dto

import (
	"math/big"
	"testing"
	"time"

	"github.com/iho/lendpool/internal/usecase"
)

func TestPoolFromStats(t *testing.T) {
	resp := PoolFromStats(&usecase.PoolStats{
		TotalDeposited:     big.NewInt(1500),
		TotalShares:        big.NewInt(1200),
		TotalBorrowed:      big.NewInt(300),
		AvailableLiquidity: big.NewInt(1200),
		UtilizationWad:     big.NewInt(200_000_000_000_000_000),
	})

	if resp.TotalDeposited != "1500" || resp.TotalShares != "1200" {
		t.Fatalf("unexpected pool response: %+v", resp)
	}
	if resp.Utilization != "200000000000000000" {
		t.Fatalf("unexpected utilization: %s", resp.Utilization)
	}
}

func TestPositionFromInfo(t *testing.T) {
	settled := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	resp := PositionFromInfo(&usecase.PositionInfo{
		Account:       "bob",
		Principal:     big.NewInt(126),
		LastAccrual:   settled,
		ShareBalance:  big.NewInt(200),
		BorrowLimit:   big.NewInt(161),
		MaxBorrowable: big.NewInt(35),
	}, false)

	if resp.Principal != "126" || resp.Healthy {
		t.Fatalf("unexpected position response: %+v", resp)
	}
	if resp.LastAccrual == nil || !resp.LastAccrual.Equal(settled) {
		t.Fatalf("expected last_accrual %v, got %v", settled, resp.LastAccrual)
	}

	fresh := PositionFromInfo(&usecase.PositionInfo{
		Account:       "carol",
		Principal:     big.NewInt(0),
		ShareBalance:  big.NewInt(0),
		BorrowLimit:   big.NewInt(0),
		MaxBorrowable: big.NewInt(0),
	}, true)

	if fresh.LastAccrual != nil {
		t.Fatalf("expected omitted last_accrual, got %v", fresh.LastAccrual)
	}
}

func TestAmountStringNilSafe(t *testing.T) {
	if got := amountString(nil); got != "0" {
		t.Fatalf("expected nil to render as 0, got %s", got)
	}
}
