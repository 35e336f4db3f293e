package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Scale is the fixed-point scaling factor used by the protocol contracts.
// Every raw integer amount on the wire is the decimal amount times 1e18.
const Scale = 18

var (
	// ScalingFactor 1e18 as a decimal
	ScalingFactor = decimal.New(1, Scale)

	// InitialPrice price assumed before the first PriceUpdated event
	InitialPrice = decimal.NewFromInt(200)

	// MaxCollateralPerDebt sentinel for the collateral-per-debt ratio of a
	// debt-free trove
	MaxCollateralPerDebt = decimal.New(1, 30)
)

// Decimal parses v, ignoring errors. Malformed input yields zero.
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Raw converts a raw integer amount to a scale-0 decimal.
func Raw(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, 0)
}

// FromRaw scales a raw integer amount down to its decimal value.
func FromRaw(raw decimal.Decimal) decimal.Decimal {
	return raw.DivRound(ScalingFactor, Scale)
}

// CollateralPerDebt computes rawColl scaled by 1e18 over rawDebt, or the
// MaxCollateralPerDebt sentinel when rawDebt is zero.
func CollateralPerDebt(rawColl, rawDebt decimal.Decimal) decimal.Decimal {
	if rawDebt.IsZero() {
		return MaxCollateralPerDebt
	}

	return rawColl.Mul(ScalingFactor).DivRound(rawDebt, 0)
}

// CollateralRatio computes collateral value over debt, invalid when debt is
// zero.
func CollateralRatio(collateral, debt, price decimal.Decimal) decimal.NullDecimal {
	if debt.IsZero() {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{
		Decimal: collateral.Mul(price).DivRound(debt, Scale),
		Valid:   true,
	}
}
