package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// BigOne represents a single bitcoin in satoshis (precision 8).
	BigOne = uint64(math.Pow10(8))
	// BigOneDecimal represents a single bitcoin in satoshis as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))
)

func init() {
	decimal.DivisionPrecision = 8
}

// Sats converts a uint64 satoshi amount to decimal.Decimal.
func Sats(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

// SatsToBTC converts a satoshi amount to its bitcoin denomination.
func SatsToBTC(x uint64) decimal.Decimal {
	return Sats(x).Div(BigOneDecimal)
}

// Div takes two uint64 numbers and divides them x / y and returns the result
// as decimal.Decimal
func Div(x, y uint64) decimal.Decimal {
	return Sats(x).Div(Sats(y))
}

// Percent returns the ratio x/y expressed as a percentage with two decimal
// places. Returns zero when y is zero.
func Percent(x, y uint64) decimal.Decimal {
	if y == 0 {
		return decimal.Zero
	}
	return Div(x, y).Mul(decimal.NewFromInt(100)).Round(2)
}
