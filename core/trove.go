package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Trove status values
const (
	TroveStatusOpen          = "open"
	TroveStatusClosedByOwner = "closedByOwner"
	TroveStatusLiquidated    = "liquidated"
	TroveStatusRedeemed      = "redeemed"
)

// Trove one incarnation of an owner's collateralized position, keyed
// owner-n. Decimal fields mirror the authoritative on-chain values; the raw
// fields keep the exact integers for re-derivation. A trove whose collateral
// reaches zero is closed: the owner's current pointer is cleared and the row
// is kept as history.
type Trove struct {
	ID      string `sql:"size:50;PRIMARY_KEY" json:"id"`
	OwnerID string `sql:"size:42;index:idx_troves_owner" json:"owner_id"`
	Status  string `sql:"size:16" json:"status"`

	Collateral decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"collateral"`
	Debt       decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"debt"`

	RawCollateral        decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_collateral"`
	RawDebt              decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_debt"`
	RawStake             decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_stake"`
	RawCollateralPerDebt decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_collateral_per_debt"`

	// redistribution totals at the trove's last reward application; the gap
	// to the current totals is this trove's unapplied pending reward
	RawSnapshotOfTotalRedistributedCollateral decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_snapshot_of_total_redistributed_collateral"`
	RawSnapshotOfTotalRedistributedDebt       decimal.Decimal `sql:"type:decimal(65,0);default:0" json:"raw_snapshot_of_total_redistributed_debt"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewTrove a fresh zeroed incarnation
func NewTrove(id, owner string) *Trove {
	return &Trove{
		ID:            id,
		OwnerID:       owner,
		Status:        TroveStatusOpen,
		Collateral:    decimal.Zero,
		Debt:          decimal.Zero,
		RawCollateral: decimal.Zero,
		RawDebt:       decimal.Zero,
		RawStake:      decimal.Zero,
		RawCollateralPerDebt:                      decimal.Zero,
		RawSnapshotOfTotalRedistributedCollateral: decimal.Zero,
		RawSnapshotOfTotalRedistributedDebt:       decimal.Zero,
	}
}

// TroveChange one mutating event on a trove, immutable once written. A
// change with zero collateral and debt delta is still recorded: a pure
// reward-snapshot update is a real state transition.
type TroveChange struct {
	ChangeBase
	TroveID   string         `sql:"size:50;index:idx_trove_changes_trove" json:"trove_id"`
	Operation TroveOperation `sql:"size:32" json:"operation"`

	CollateralBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"collateral_before"`
	CollateralAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"collateral_after"`
	CollateralChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"collateral_change"`

	DebtBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"debt_before"`
	DebtAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"debt_after"`
	DebtChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"debt_change"`

	CollateralRatioBefore decimal.NullDecimal `sql:"type:decimal(39,18)" json:"collateral_ratio_before"`
	CollateralRatioAfter  decimal.NullDecimal `sql:"type:decimal(39,18)" json:"collateral_ratio_after"`

	LiquidationID string `sql:"size:36" json:"liquidation_id,omitempty"`
	RedemptionID  string `sql:"size:36" json:"redemption_id,omitempty"`
}

// TroveStore trove store interface
type TroveStore interface {
	Find(ctx context.Context, id string) (*Trove, error)
	ListByOwner(ctx context.Context, owner string) ([]*Trove, error)
	Create(ctx context.Context, tx *db.DB, trove *Trove) error
	Update(ctx context.Context, tx *db.DB, trove *Trove) error
}

// TroveChangeStore trove change store interface
type TroveChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *TroveChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*TroveChange, error)
	ListByTrove(ctx context.Context, troveID string) ([]*TroveChange, error)
}
