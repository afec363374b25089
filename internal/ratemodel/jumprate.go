// Package ratemodel implements the pool's pluggable interest-rate policy.
package ratemodel

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/lendpool/internal/domain"
)

var (
	ErrNilUtilization     = errors.New("utilization is nil")
	ErrUtilizationRange   = errors.New("utilization out of range")
	ErrInvalidCurveParams = errors.New("invalid curve parameters")
)

var wadDecimal = decimal.NewFromBigInt(domain.Wad, 0)

// JumpRate is a kinked borrow-rate curve. Below the kink the annual rate
// climbs from BaseAPR along Slope1; past the kink it climbs along the much
// steeper Slope2, pricing the pool's last liquidity sharply. All parameters
// are annual fractions, e.g. 0.02 for 2%.
type JumpRate struct {
	base   decimal.Decimal
	slope1 decimal.Decimal
	slope2 decimal.Decimal
	kink   decimal.Decimal

	mu       sync.RWMutex
	lastUtil decimal.Decimal
}

// NewJumpRate validates the curve and returns a model at zero utilization.
func NewJumpRate(base, slope1, slope2, kink decimal.Decimal) (*JumpRate, error) {
	if base.IsNegative() || slope1.IsNegative() || slope2.IsNegative() {
		return nil, ErrInvalidCurveParams
	}
	if kink.LessThanOrEqual(decimal.Zero) || kink.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, ErrInvalidCurveParams
	}
	return &JumpRate{
		base:   base,
		slope1: slope1,
		slope2: slope2,
		kink:   kink,
	}, nil
}

// Default returns the curve used when no configuration is supplied:
// 2% base, 15% slope to an 80% kink, then a 60% jump slope.
func Default() *JumpRate {
	model, err := NewJumpRate(
		decimal.NewFromFloat(0.02),
		decimal.NewFromFloat(0.15),
		decimal.NewFromFloat(0.60),
		decimal.NewFromFloat(0.80),
	)
	if err != nil {
		panic(err)
	}
	return model
}

// NotifyUtilization records the pool's current Wad-scaled utilization.
func (j *JumpRate) NotifyUtilization(ctx context.Context, utilization *big.Int) error {
	if utilization == nil {
		return ErrNilUtilization
	}
	if utilization.Sign() < 0 || utilization.Cmp(domain.Wad) > 0 {
		return ErrUtilizationRange
	}

	u := decimal.NewFromBigInt(utilization, 0).Div(wadDecimal)

	j.mu.Lock()
	j.lastUtil = u
	j.mu.Unlock()

	return nil
}

// LastUtilization returns the most recently recorded utilization as a
// fraction.
func (j *JumpRate) LastUtilization() decimal.Decimal {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastUtil
}

// RatePerSecond returns the Wad-scaled per-second borrow rate for the given
// Wad-scaled utilization. The annual rate is divided across a 365-day year
// and truncated.
func (j *JumpRate) RatePerSecond(ctx context.Context, utilization *big.Int) *big.Int {
	apr := j.APR(utilization)

	perSecond := apr.Mul(wadDecimal).
		Div(decimal.NewFromInt(domain.SecondsPerYear)).
		Truncate(0)

	return perSecond.BigInt()
}

// APR returns the annual borrow rate as a fraction for the given Wad-scaled
// utilization. Out-of-range inputs are clamped.
func (j *JumpRate) APR(utilization *big.Int) decimal.Decimal {
	u := decimal.Zero
	if utilization != nil {
		u = decimal.NewFromBigInt(utilization, 0).Div(wadDecimal)
	}
	if u.IsNegative() {
		u = decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if u.GreaterThan(one) {
		u = one
	}

	if u.LessThanOrEqual(j.kink) {
		return j.base.Add(j.slope1.Mul(u).Div(j.kink))
	}

	excess := u.Sub(j.kink).Div(one.Sub(j.kink))
	return j.base.Add(j.slope1).Add(j.slope2.Mul(excess))
}
