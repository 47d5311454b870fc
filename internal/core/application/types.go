package application

import (
	"github.com/shopspring/decimal"
)

// Balance separates the amount the wallet can actually spend right now from
// the total discovered by the last scan. The two drift apart because of
// unconfirmed and locked unspents.
type Balance struct {
	Total     uint64
	Spendable uint64
}

// SendPreview is a dry-run of a send. It mutates no state and locks no
// unspents.
type SendPreview struct {
	TargetAddress  string
	Amount         uint64
	AmountBTC      decimal.Decimal
	Fee            uint64
	FeeBTC         decimal.Decimal
	FeePercent     decimal.Decimal
	FeeWarning     bool
	Total          uint64
	NumInputs      int
	ChangeAmount   uint64
	DustAddedToFee uint64
}
