package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Stake an owner's governance-token stake, keyed by address. Unlike troves,
// a removed stake keeps its row; re-staking re-activates it.
type Stake struct {
	ID             string          `sql:"size:42;PRIMARY_KEY" json:"id"`
	OwnerID        string          `sql:"size:42;index:idx_stakes_owner" json:"owner_id"`
	SequenceNumber int64           `sql:"index:idx_stakes_seq" json:"sequence_number"`
	Amount         decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"amount"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// StakeChange one mutating event on a stake
type StakeChange struct {
	ChangeBase
	StakeID   string         `sql:"size:42;index:idx_stake_changes_stake" json:"stake_id"`
	Operation StakeOperation `sql:"size:32" json:"operation"`

	StakedAmountBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"staked_amount_before"`
	StakedAmountAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"staked_amount_after"`
	StakedAmountChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"staked_amount_change"`

	IssuanceGain   decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"issuance_gain"`
	RedemptionGain decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"redemption_gain"`
}

// StakeOperationFor derives the operation recorded for moving a stake from
// its current amount to next.
func StakeOperationFor(current, next decimal.Decimal) StakeOperation {
	switch {
	case current.IsZero() && next.GreaterThan(decimal.Zero):
		return StakeOperationStakeCreated
	case next.GreaterThan(current):
		return StakeOperationStakeIncreased
	case next.IsZero():
		return StakeOperationStakeRemoved
	default:
		return StakeOperationStakeDecreased
	}
}

// StakeStore stake store interface
type StakeStore interface {
	Find(ctx context.Context, id string) (*Stake, error)
	Create(ctx context.Context, tx *db.DB, stake *Stake) error
	Update(ctx context.Context, tx *db.DB, stake *Stake) error
}

// StakeChangeStore stake change store interface
type StakeChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *StakeChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*StakeChange, error)
	ListByStake(ctx context.Context, stakeID string) ([]*StakeChange, error)
}
