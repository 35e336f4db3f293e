package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ChangeBase the fields shared by every change record: its position in the
// global change order, the transaction it belongs to and the system-state
// snapshots bracketing it. Embedded by the concrete change entities.
type ChangeBase struct {
	ID                  string    `sql:"size:36;PRIMARY_KEY" json:"id"`
	SequenceNumber      int64     `sql:"index:idx_changes_seq" json:"sequence_number"`
	TransactionID       string    `sql:"size:66;index:idx_changes_tx" json:"transaction_id"`
	SystemStateBeforeID string    `sql:"size:36" json:"system_state_before_id"`
	SystemStateAfterID  string    `sql:"size:36" json:"system_state_after_id"`
	CreatedAt           time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PriceChange before/after record of one oracle price update
type PriceChange struct {
	ChangeBase
	PriceBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"price_before"`
	PriceAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"price_after"`
	PriceChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"price_change"`
}

// CollSurplusChange before/after record of one owner's claimable collateral
// surplus
type CollSurplusChange struct {
	ChangeBase
	OwnerID           string          `sql:"size:42;index:idx_coll_surplus_changes_owner" json:"owner_id"`
	CollSurplusBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"coll_surplus_before"`
	CollSurplusAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"coll_surplus_after"`
	CollSurplusChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"coll_surplus_change"`
}

// PriceChangeStore price change store interface
type PriceChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *PriceChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*PriceChange, error)
}

// CollSurplusChangeStore coll surplus change store interface
type CollSurplusChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *CollSurplusChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*CollSurplusChange, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]*CollSurplusChange, error)
}
