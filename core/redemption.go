package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Redemption one logical redemption, accumulated across the events of its
// transaction and finished by the aggregate Redemption event. Partial means
// the redeemer got less than they asked for.
type Redemption struct {
	ID                      string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	SequenceNumber          int64           `sql:"index:idx_redemptions_seq" json:"sequence_number"`
	TransactionID           string          `sql:"size:66;index:idx_redemptions_tx" json:"transaction_id"`
	RedeemerID              string          `sql:"size:42" json:"redeemer_id"`
	TokensAttemptedToRedeem decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"tokens_attempted_to_redeem"`
	TokensActuallyRedeemed  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"tokens_actually_redeemed"`
	CollateralRedeemed      decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"collateral_redeemed"`
	Fee                     decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"fee"`
	Partial                 bool            `sql:"default:false" json:"partial"`
	Version                 int64           `sql:"default:0" json:"version"`
	CreatedAt               time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// RedemptionStore redemption store interface
type RedemptionStore interface {
	Find(ctx context.Context, id string) (*Redemption, error)
	Create(ctx context.Context, tx *db.DB, redemption *Redemption) error
	Update(ctx context.Context, tx *db.DB, redemption *Redemption) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*Redemption, error)
}
