package domain

import (
	"math/big"
	"time"
)

// Position is a borrower's debt record. Principal is interest-inclusive once
// accrued. A zero Principal together with a zero LastAccrual timestamp is the
// canonical "no open debt" state; rows are created on first borrow and kept
// forever, so the positions table doubles as the borrower registry.
type Position struct {
	Account     string
	Principal   *big.Int
	LastAccrual time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPosition returns a debt-free position for account.
func NewPosition(account string, now time.Time) *Position {
	return &Position{
		Account:   account,
		Principal: zero(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize replaces a nil principal with zero.
func (p *Position) Normalize() {
	if p.Principal == nil {
		p.Principal = zero()
	}
}

// HasDebt reports whether the position carries open debt.
func (p *Position) HasDebt() bool {
	return p.Principal != nil && p.Principal.Sign() > 0
}

// SetPrincipal sets the principal and stamps the accrual clock. Driving the
// principal to zero resets the clock, so a later re-borrow starts a clean
// interest window.
func (p *Position) SetPrincipal(value *big.Int, now time.Time) {
	p.Principal = clone(value)
	if p.Principal.Sign() == 0 {
		p.LastAccrual = time.Time{}
	} else {
		p.LastAccrual = now
	}
	p.UpdatedAt = now
}

// AddPrincipal raises the principal by amount and stamps the accrual clock.
func (p *Position) AddPrincipal(amount *big.Int, now time.Time) {
	p.SetPrincipal(new(big.Int).Add(p.Principal, amount), now)
}

// SubPrincipal lowers the principal by amount; the zero-reset rule applies.
func (p *Position) SubPrincipal(amount *big.Int, now time.Time) {
	p.SetPrincipal(new(big.Int).Sub(p.Principal, amount), now)
}

// ElapsedSeconds is the number of whole seconds since the last accrual.
// Zero when the position has no debt or time has not advanced.
func (p *Position) ElapsedSeconds(now time.Time) int64 {
	if !p.HasDebt() || p.LastAccrual.IsZero() {
		return 0
	}
	elapsed := now.Unix() - p.LastAccrual.Unix()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// AccruedInterest computes floor(principal * ratePerSecond * elapsed / Wad)
// for the given Wad-scaled per-second rate, without mutating the position.
func (p *Position) AccruedInterest(ratePerSecond *big.Int, now time.Time) *big.Int {
	elapsed := p.ElapsedSeconds(now)
	if elapsed == 0 || ratePerSecond == nil || ratePerSecond.Sign() <= 0 {
		return zero()
	}
	interest := new(big.Int).Mul(p.Principal, ratePerSecond)
	interest.Mul(interest, big.NewInt(elapsed))
	return interest.Quo(interest, Wad)
}

// ApplyInterest folds accrued interest into the principal and advances the
// accrual clock. The clock only advances when interest is positive so that
// sub-unit interest keeps accruing from the old timestamp instead of being
// lost to rounding.
func (p *Position) ApplyInterest(interest *big.Int, now time.Time) {
	if interest == nil || interest.Sign() <= 0 {
		return
	}
	p.Principal = new(big.Int).Add(p.Principal, interest)
	p.LastAccrual = now
	p.UpdatedAt = now
}
