package views

import (
	"trovescan/core"

	"github.com/shopspring/decimal"
)

// Change feed types
const (
	ChangeTypeTrove            = "trove"
	ChangeTypeStabilityDeposit = "stabilityDeposit"
	ChangeTypeStake            = "stake"
	ChangeTypeToken            = "token"
	ChangeTypePrice            = "price"
	ChangeTypeCollSurplus      = "collSurplus"
)

// Change one item of the combined change feed
type Change struct {
	Type           string      `json:"type"`
	SequenceNumber int64       `json:"sequence_number"`
	Record         interface{} `json:"record"`
}

// Trove trove view with the ratio at the current price
type Trove struct {
	core.Trove
	CollateralRatio decimal.NullDecimal `json:"collateral_ratio"`
}

// Owner one address with its current positions
type Owner struct {
	core.User
	Trove            *Trove                 `json:"trove,omitempty"`
	StabilityDeposit *core.StabilityDeposit `json:"stability_deposit,omitempty"`
	Stake            *core.Stake            `json:"stake,omitempty"`
	Balances         []*core.TokenBalance   `json:"balances,omitempty"`
}

// Token token view with its supply history
type Token struct {
	core.Token
	Changes []*core.TokenChange `json:"changes"`
}
