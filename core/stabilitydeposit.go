package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// StabilityDeposit one incarnation of an owner's stability pool deposit,
// keyed owner-n like troves. Closed when the deposited amount reaches zero.
type StabilityDeposit struct {
	ID              string          `sql:"size:50;PRIMARY_KEY" json:"id"`
	OwnerID         string          `sql:"size:42;index:idx_stability_deposits_owner" json:"owner_id"`
	DepositedAmount decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"deposited_amount"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewStabilityDeposit a fresh zeroed incarnation
func NewStabilityDeposit(id, owner string) *StabilityDeposit {
	return &StabilityDeposit{
		ID:              id,
		OwnerID:         owner,
		DepositedAmount: decimal.Zero,
	}
}

// StabilityDepositChange one mutating event on a stability deposit
type StabilityDepositChange struct {
	ChangeBase
	StabilityDepositID string                    `sql:"size:50;index:idx_stability_deposit_changes_deposit" json:"stability_deposit_id"`
	Operation          StabilityDepositOperation `sql:"size:32" json:"operation"`

	DepositedAmountBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"deposited_amount_before"`
	DepositedAmountAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"deposited_amount_after"`
	DepositedAmountChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"deposited_amount_change"`

	CollateralGain decimal.NullDecimal `sql:"type:decimal(39,18)" json:"collateral_gain"`
}

// StabilityDepositStore stability deposit store interface
type StabilityDepositStore interface {
	Find(ctx context.Context, id string) (*StabilityDeposit, error)
	ListByOwner(ctx context.Context, owner string) ([]*StabilityDeposit, error)
	Create(ctx context.Context, tx *db.DB, deposit *StabilityDeposit) error
	Update(ctx context.Context, tx *db.DB, deposit *StabilityDeposit) error
}

// StabilityDepositChangeStore stability deposit change store interface
type StabilityDepositChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *StabilityDepositChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*StabilityDepositChange, error)
	ListByDeposit(ctx context.Context, depositID string) ([]*StabilityDepositChange, error)
}
