package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// GlobalID the key of the only Global row
const GlobalID = "only"

// Global the singleton carrying every monotonic counter, the aggregate trove
// and stake gauges, and the current-row pointers. It is mutated by exactly
// one writer, once per event, inside that event's transaction.
type Global struct {
	ID string `sql:"size:36;PRIMARY_KEY" json:"id"`

	SystemStateCount int64 `sql:"default:0" json:"system_state_count"`
	TransactionCount int64 `sql:"default:0" json:"transaction_count"`
	ChangeCount      int64 `sql:"default:0" json:"change_count"`
	LiquidationCount int64 `sql:"default:0" json:"liquidation_count"`
	RedemptionCount  int64 `sql:"default:0" json:"redemption_count"`
	StakeCount       int64 `sql:"default:0" json:"stake_count"`

	NumberOfOpenTroves          int64 `sql:"default:0" json:"number_of_open_troves"`
	NumberOfLiquidatedTroves    int64 `sql:"default:0" json:"number_of_liquidated_troves"`
	NumberOfRedeemedTroves      int64 `sql:"default:0" json:"number_of_redeemed_troves"`
	NumberOfTrovesClosedByOwner int64 `sql:"default:0" json:"number_of_troves_closed_by_owner"`
	TotalNumberOfTroves         int64 `sql:"default:0" json:"total_number_of_troves"`

	NumberOfActiveStakes int64 `sql:"default:0" json:"number_of_active_stakes"`
	TotalNumberOfStakes  int64 `sql:"default:0" json:"total_number_of_stakes"`

	RawTotalRedistributedCollateral decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_total_redistributed_collateral"`
	RawTotalRedistributedDebt       decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_total_redistributed_debt"`
	TotalRedemptionFeesPaid         decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"total_redemption_fees_paid"`

	CurrentSystemStateID string `sql:"size:36" json:"current_system_state_id"`
	CurrentLiquidationID string `sql:"size:36" json:"current_liquidation_id"`
	CurrentRedemptionID  string `sql:"size:36" json:"current_redemption_id"`

	// LastProcessedEvent replay cursor, advanced inside each event's
	// transaction so processing is exactly-once.
	LastProcessedEvent uint64 `sql:"default:0" json:"last_processed_event"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewGlobal the all-zero singleton
func NewGlobal() *Global {
	return &Global{
		ID:                              GlobalID,
		RawTotalRedistributedCollateral: decimal.Zero,
		RawTotalRedistributedDebt:       decimal.Zero,
		TotalRedemptionFeesPaid:         decimal.Zero,
	}
}

func next(counter *int64) int64 {
	n := *counter
	*counter++
	return n
}

// NextSystemStateSequence allocates the next system state sequence number.
func (g *Global) NextSystemStateSequence() int64 { return next(&g.SystemStateCount) }

// NextTransactionSequence allocates the next transaction sequence number.
func (g *Global) NextTransactionSequence() int64 { return next(&g.TransactionCount) }

// NextChangeSequence allocates the next change sequence number.
func (g *Global) NextChangeSequence() int64 { return next(&g.ChangeCount) }

// NextLiquidationSequence allocates the next liquidation sequence number.
func (g *Global) NextLiquidationSequence() int64 { return next(&g.LiquidationCount) }

// NextRedemptionSequence allocates the next redemption sequence number.
func (g *Global) NextRedemptionSequence() int64 { return next(&g.RedemptionCount) }

// NextStakeSequence allocates the next stake sequence number.
func (g *Global) NextStakeSequence() int64 { return next(&g.StakeCount) }

// IncreaseNumberOfOpenTroves a new trove incarnation was opened.
func (g *Global) IncreaseNumberOfOpenTroves() {
	g.NumberOfOpenTroves++
	g.TotalNumberOfTroves++
}

// CountClosedTrove moves an open trove into the bucket selected by the
// closing operation.
func (g *Global) CountClosedTrove(operation TroveOperation) {
	g.NumberOfOpenTroves--

	switch {
	case operation.IsLiquidation():
		g.NumberOfLiquidatedTroves++
	case operation.IsRedemption():
		g.NumberOfRedeemedTroves++
	default:
		g.NumberOfTrovesClosedByOwner++
	}
}

// GlobalStore global store interface
type GlobalStore interface {
	Find(ctx context.Context) (*Global, error)
	Create(ctx context.Context, tx *db.DB, global *Global) error
	Update(ctx context.Context, tx *db.DB, global *Global) error
}
