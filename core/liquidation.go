package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Liquidation one logical liquidation, possibly spanning several events of
// the same transaction. Created zeroed when the first liquidating trove
// change arrives; the aggregate Liquidation event fills the totals in and
// clears the current pointer.
type Liquidation struct {
	ID                   string          `sql:"size:36;PRIMARY_KEY" json:"id"`
	SequenceNumber       int64           `sql:"index:idx_liquidations_seq" json:"sequence_number"`
	TransactionID        string          `sql:"size:66;index:idx_liquidations_tx" json:"transaction_id"`
	LiquidatorID         string          `sql:"size:42" json:"liquidator_id"`
	LiquidatedCollateral decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"liquidated_collateral"`
	LiquidatedDebt       decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"liquidated_debt"`
	CollGasCompensation  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"coll_gas_compensation"`
	TokenGasCompensation decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"token_gas_compensation"`
	Version              int64           `sql:"default:0" json:"version"`
	CreatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LiquidationStore liquidation store interface
type LiquidationStore interface {
	Find(ctx context.Context, id string) (*Liquidation, error)
	Create(ctx context.Context, tx *db.DB, liquidation *Liquidation) error
	Update(ctx context.Context, tx *db.DB, liquidation *Liquidation) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*Liquidation, error)
}
