package domain

import "math/big"

// Wad is the fixed-point scale for rates and factors. Amounts themselves are
// plain integer base units; only rates, the collateral factor and the
// liquidation bonus carry Wad precision.
var (
	Wad     = big.NewInt(1_000_000_000_000_000_000)
	halfWad = new(big.Int).Rsh(Wad, 1)

	// CollateralFactor is 2/3 in Wad: debt may never exceed two thirds of
	// the collateral value (<= 150% collateralization).
	CollateralFactor = big.NewInt(666_666_666_666_666_666)

	// LiquidationBonus is 1.05 in Wad: liquidators receive 5% more collateral
	// value than the debt they repay.
	LiquidationBonus = big.NewInt(1_050_000_000_000_000_000)

	// SecondsPerYear is used by rate policies to derive per-second rates
	// from annual ones.
	SecondsPerYear = int64(31_536_000)
)

// MulDivFloor returns floor(a*b/den). Zero when den is zero.
func MulDivFloor(a, b, den *big.Int) *big.Int {
	if a == nil || b == nil || den == nil || den.Sign() == 0 {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(a, b)
	return out.Quo(out, den)
}

// MulDivHalfUp returns round(a*b/den) rounding half up, implemented by adding
// den/2 before the integer division. Zero when den is zero.
func MulDivHalfUp(a, b, den *big.Int) *big.Int {
	if a == nil || b == nil || den == nil || den.Sign() == 0 {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(a, b)
	out.Add(out, new(big.Int).Rsh(den, 1))
	return out.Quo(out, den)
}

// BorrowLimit returns floor(collateralValue * CollateralFactor / Wad).
func BorrowLimit(collateralValue *big.Int) *big.Int {
	return MulDivFloor(collateralValue, CollateralFactor, Wad)
}

// SeizeValue returns floor(repaid * LiquidationBonus / Wad), the collateral
// value owed to a liquidator before the share-balance cap is applied.
func SeizeValue(repaid *big.Int) *big.Int {
	return MulDivFloor(repaid, LiquidationBonus, Wad)
}

func zero() *big.Int { return big.NewInt(0) }

func clone(v *big.Int) *big.Int {
	if v == nil {
		return zero()
	}
	return new(big.Int).Set(v)
}
