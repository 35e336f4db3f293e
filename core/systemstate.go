package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// SystemState an append-only snapshot of the system-wide solvency metrics.
// Mutations never overwrite a row: the current state is re-persisted under a
// fresh sequence number ("bumped") and the Global pointer is moved.
type SystemState struct {
	ID                     string              `sql:"size:36;PRIMARY_KEY" json:"id"`
	SequenceNumber         int64               `sql:"index:idx_system_states_seq" json:"sequence_number"`
	Price                  decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"price"`
	TotalCollateral        decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"total_collateral"`
	TotalDebt              decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"total_debt"`
	TotalCollateralRatio   decimal.NullDecimal `sql:"type:decimal(39,18)" json:"total_collateral_ratio"`
	TokensInStabilityPool  decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"tokens_in_stability_pool"`
	CollSurplusPoolBalance decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"coll_surplus_pool_balance"`
	TotalStaked            decimal.Decimal     `sql:"type:decimal(39,18);default:0" json:"total_staked"`
	CreatedAt              time.Time           `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// SystemStateStore system state store interface. Rows are append-only; there
// is no update path.
type SystemStateStore interface {
	Find(ctx context.Context, id string) (*SystemState, error)
	Create(ctx context.Context, tx *db.DB, state *SystemState) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*SystemState, error)
}
