package domain

import (
	"math/big"
	"testing"
)

func pool(deposited, shares, borrowed int64) *Pool {
	return &Pool{
		TotalDeposited: big.NewInt(deposited),
		TotalShares:    big.NewInt(shares),
		TotalBorrowed:  big.NewInt(borrowed),
	}
}

func TestPool_SharesForAmount(t *testing.T) {
	tests := []struct {
		name      string
		pool      *Pool
		amount    int64
		expected  int64
	}{
		{
			name:     "first depositor gets 1:1",
			pool:     pool(0, 0, 0),
			amount:   1000,
			expected: 1000,
		},
		{
			name:     "share price 1 stays 1:1",
			pool:     pool(1000, 1000, 0),
			amount:   200,
			expected: 200,
		},
		{
			name:     "share price above 1 mints fewer shares",
			pool:     pool(1500, 1000, 0),
			amount:   300,
			expected: 200,
		},
		{
			name:     "rounds half up",
			pool:     pool(1000, 3, 0),
			amount:   500, // 500*3/1000 = 1.5 -> 2
			expected: 2,
		},
		{
			name:     "rounds down below half",
			pool:     pool(1000, 3, 0),
			amount:   400, // 400*3/1000 = 1.2 -> 1
			expected: 1,
		},
		{
			name:     "zero amount mints nothing",
			pool:     pool(1000, 1000, 0),
			amount:   0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pool.SharesForAmount(big.NewInt(tt.amount))
			if got.Cmp(big.NewInt(tt.expected)) != 0 {
				t.Errorf("expected %d shares, got %s", tt.expected, got)
			}
		})
	}
}

func TestPool_AmountForShares(t *testing.T) {
	tests := []struct {
		name     string
		pool     *Pool
		shares   int64
		expected int64
	}{
		{
			name:     "empty pool yields zero",
			pool:     pool(0, 0, 0),
			shares:   100,
			expected: 0,
		},
		{
			name:     "share price 1",
			pool:     pool(1000, 1000, 0),
			shares:   250,
			expected: 250,
		},
		{
			name:     "share price 1.5",
			pool:     pool(1500, 1000, 0),
			shares:   200,
			expected: 300,
		},
		{
			name:     "rounds half up",
			pool:     pool(3, 2, 0),
			shares:   1, // 1*3/2 = 1.5 -> 2
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pool.AmountForShares(big.NewInt(tt.shares))
			if got.Cmp(big.NewInt(tt.expected)) != 0 {
				t.Errorf("expected amount %d, got %s", tt.expected, got)
			}
		})
	}
}

func TestPool_ConversionRoundTrip(t *testing.T) {
	// amountForShares(sharesForAmount(x)) must stay within 1 unit of x for
	// any pool state, and be exact for the first depositor.
	pools := []*Pool{
		pool(0, 0, 0),
		pool(1000, 1000, 0),
		pool(1830, 1200, 500),
		pool(7, 3, 0),
		pool(1_000_000_007, 999_983, 12345),
	}
	amounts := []int64{1, 2, 3, 10, 99, 1000, 123_456_789}

	one := big.NewInt(1)
	for _, p := range pools {
		for _, a := range amounts {
			amount := big.NewInt(a)
			shares := p.SharesForAmount(amount)

			if p.TotalShares.Sign() == 0 {
				if shares.Cmp(amount) != 0 {
					t.Fatalf("first depositor must be exact: %s != %s", shares, amount)
				}
				continue
			}

			back := p.AmountForShares(shares)
			drift := new(big.Int).Sub(back, amount)
			if drift.CmpAbs(one) > 0 {
				t.Errorf("round trip drift %s for amount %d in pool %s/%s",
					drift, a, p.TotalDeposited, p.TotalShares)
			}
		}
	}
}

func TestPool_UtilizationWad(t *testing.T) {
	tests := []struct {
		name     string
		pool     *Pool
		expected *big.Int
	}{
		{
			name:     "no borrows",
			pool:     pool(1000, 1000, 0),
			expected: big.NewInt(0),
		},
		{
			name:     "empty pool",
			pool:     pool(0, 0, 0),
			expected: big.NewInt(0),
		},
		{
			name:     "half of held balance lent out",
			pool:     pool(1500, 1000, 500), // balance 1000, borrowed 500
			expected: new(big.Int).Rsh(Wad, 1),
		},
		{
			name:     "borrows exceed held balance clamps to one",
			pool:     pool(1000, 1000, 900), // balance 100, borrowed 900
			expected: Wad,
		},
		{
			name:     "all cash lent out clamps to one",
			pool:     pool(1000, 1000, 1000),
			expected: Wad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pool.UtilizationWad()
			if got.Cmp(tt.expected) != 0 {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestPool_ApplyInterest(t *testing.T) {
	p := pool(1000, 1000, 400)
	p.ApplyInterest(big.NewInt(50))

	if p.TotalBorrowed.Cmp(big.NewInt(450)) != 0 {
		t.Errorf("expected borrowed 450, got %s", p.TotalBorrowed)
	}
	if p.TotalDeposited.Cmp(big.NewInt(1050)) != 0 {
		t.Errorf("expected deposited 1050, got %s", p.TotalDeposited)
	}
	// Held balance is untouched by accrual.
	if p.AvailableLiquidity().Cmp(big.NewInt(600)) != 0 {
		t.Errorf("expected liquidity 600, got %s", p.AvailableLiquidity())
	}
}

func TestBorrowLimit(t *testing.T) {
	tests := []struct {
		collateral int64
		expected   int64
	}{
		{0, 0},
		{3, 1},   // floor(3*2/3) = 2? floor(3*666...e18/1e18) = 1.999.. -> 1
		{200, 133},
		{300, 199}, // 300*0.666..6 = 199.99.. -> 199
		{1500, 999},
	}

	for _, tt := range tests {
		got := BorrowLimit(big.NewInt(tt.collateral))
		if got.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("BorrowLimit(%d): expected %d, got %s", tt.collateral, tt.expected, got)
		}
	}
}

func TestSeizeValue(t *testing.T) {
	tests := []struct {
		repaid   int64
		expected int64
	}{
		{0, 0},
		{100, 105},
		{189, 198}, // floor(198.45)
		{1, 1},     // floor(1.05)
	}

	for _, tt := range tests {
		got := SeizeValue(big.NewInt(tt.repaid))
		if got.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("SeizeValue(%d): expected %d, got %s", tt.repaid, tt.expected, got)
		}
	}
}
