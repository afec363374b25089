package domain

import (
	"math/big"
	"time"
)

// Pool is the global accounting state of the lending pool. TotalDeposited is
// the asset value owed to all shareholders, TotalShares the outstanding share
// supply and TotalBorrowed the sum of every borrower's principal. The pool's
// held cash balance is TotalDeposited - TotalBorrowed at all times.
type Pool struct {
	TotalDeposited *big.Int
	TotalShares    *big.Int
	TotalBorrowed  *big.Int
	UpdatedAt      time.Time
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		TotalDeposited: zero(),
		TotalShares:    zero(),
		TotalBorrowed:  zero(),
	}
}

// Normalize replaces nil totals with zero. Repositories call it after
// scanning so math never sees a nil big.Int.
func (p *Pool) Normalize() {
	if p.TotalDeposited == nil {
		p.TotalDeposited = zero()
	}
	if p.TotalShares == nil {
		p.TotalShares = zero()
	}
	if p.TotalBorrowed == nil {
		p.TotalBorrowed = zero()
	}
}

// SharesForAmount converts an asset amount into shares at the current share
// price, rounding half up. The first depositor is credited 1:1.
func (p *Pool) SharesForAmount(amount *big.Int) *big.Int {
	if amount == nil || amount.Sign() <= 0 {
		return zero()
	}
	if p.TotalDeposited.Sign() == 0 || p.TotalShares.Sign() == 0 {
		return clone(amount)
	}
	return MulDivHalfUp(amount, p.TotalShares, p.TotalDeposited)
}

// AmountForShares converts shares into an asset amount at the current share
// price, rounding half up. Zero when no shares exist.
func (p *Pool) AmountForShares(shares *big.Int) *big.Int {
	if shares == nil || shares.Sign() <= 0 || p.TotalShares.Sign() == 0 {
		return zero()
	}
	return MulDivHalfUp(shares, p.TotalDeposited, p.TotalShares)
}

// AvailableLiquidity is the cash the pool currently holds:
// TotalDeposited - TotalBorrowed, floored at zero.
func (p *Pool) AvailableLiquidity() *big.Int {
	liquidity := new(big.Int).Sub(p.TotalDeposited, p.TotalBorrowed)
	if liquidity.Sign() < 0 {
		return zero()
	}
	return liquidity
}

// UtilizationWad is TotalBorrowed divided by the held balance, Wad-scaled
// and clamped to [0, 1]. Zero when nothing is borrowed, one when borrows
// meet or exceed the held balance.
func (p *Pool) UtilizationWad() *big.Int {
	if p.TotalBorrowed.Sign() == 0 {
		return zero()
	}
	balance := p.AvailableLiquidity()
	if balance.Sign() == 0 {
		return clone(Wad)
	}
	u := MulDivFloor(p.TotalBorrowed, Wad, balance)
	if u.Cmp(Wad) > 0 {
		return clone(Wad)
	}
	return u
}

// Deposit credits a depositor: value and freshly minted shares are added to
// the totals. Returns the minted share count.
func (p *Pool) Deposit(amount *big.Int) *big.Int {
	shares := p.SharesForAmount(amount)
	p.TotalDeposited = new(big.Int).Add(p.TotalDeposited, amount)
	p.TotalShares = new(big.Int).Add(p.TotalShares, shares)
	return shares
}

// Burn removes shares and the corresponding value from the totals.
func (p *Pool) Burn(shares, amount *big.Int) {
	p.TotalDeposited = new(big.Int).Sub(p.TotalDeposited, amount)
	p.TotalShares = new(big.Int).Sub(p.TotalShares, shares)
}

// AddBorrow raises the outstanding principal total.
func (p *Pool) AddBorrow(amount *big.Int) {
	p.TotalBorrowed = new(big.Int).Add(p.TotalBorrowed, amount)
}

// SubBorrow lowers the outstanding principal total.
func (p *Pool) SubBorrow(amount *big.Int) {
	p.TotalBorrowed = new(big.Int).Sub(p.TotalBorrowed, amount)
}

// ApplyInterest credits accrued interest: it is simultaneously new debt for
// borrowers and new value for depositors, which is how the share price grows.
func (p *Pool) ApplyInterest(interest *big.Int) {
	if interest == nil || interest.Sign() <= 0 {
		return
	}
	p.TotalBorrowed = new(big.Int).Add(p.TotalBorrowed, interest)
	p.TotalDeposited = new(big.Int).Add(p.TotalDeposited, interest)
}
