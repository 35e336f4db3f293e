package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ZeroAddress transfers from or to it are mints and burns
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Token a mirrored fungible token contract, keyed by address
type Token struct {
	ID          string          `sql:"size:42;PRIMARY_KEY" json:"id"`
	Symbol      string          `sql:"size:20" json:"symbol"`
	Name        string          `sql:"size:64" json:"name"`
	TotalSupply decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"total_supply"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TokenChange one total-supply mutation (mint or burn)
type TokenChange struct {
	ChangeBase
	TokenID   string         `sql:"size:42;index:idx_token_changes_token" json:"token_id"`
	Operation TokenOperation `sql:"size:8" json:"operation"`

	TotalSupplyBefore decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"total_supply_before"`
	TotalSupplyAfter  decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"total_supply_after"`
	TotalSupplyChange decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"total_supply_change"`
}

// TokenBalance one owner's balance of one token, keyed token-owner
type TokenBalance struct {
	ID        string          `sql:"size:90;PRIMARY_KEY" json:"id"`
	TokenID   string          `sql:"size:42;index:idx_token_balances_token" json:"token_id"`
	OwnerID   string          `sql:"size:42;index:idx_token_balances_owner" json:"owner_id"`
	Balance   decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"balance"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TokenBalanceID balance row key
func TokenBalanceID(token, owner string) string {
	return token + "-" + owner
}

// TokenAllowance one (owner, spender) allowance of one token; overwritten in
// place by Approval events
type TokenAllowance struct {
	ID        string          `sql:"size:130;PRIMARY_KEY" json:"id"`
	TokenID   string          `sql:"size:42;index:idx_token_allowances_token" json:"token_id"`
	OwnerID   string          `sql:"size:42;index:idx_token_allowances_owner" json:"owner_id"`
	SpenderID string          `sql:"size:42" json:"spender_id"`
	Value     decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"value"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TokenAllowanceID allowance row key
func TokenAllowanceID(token, owner, spender string) string {
	return token + "-" + owner + "-" + spender
}

// TokenStore token store interface
type TokenStore interface {
	Find(ctx context.Context, id string) (*Token, error)
	Create(ctx context.Context, tx *db.DB, token *Token) error
	Update(ctx context.Context, tx *db.DB, token *Token) error
}

// TokenChangeStore token change store interface
type TokenChangeStore interface {
	Create(ctx context.Context, tx *db.DB, change *TokenChange) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*TokenChange, error)
	ListByToken(ctx context.Context, tokenID string) ([]*TokenChange, error)
}

// TokenBalanceStore token balance store interface
type TokenBalanceStore interface {
	Find(ctx context.Context, id string) (*TokenBalance, error)
	Create(ctx context.Context, tx *db.DB, balance *TokenBalance) error
	Update(ctx context.Context, tx *db.DB, balance *TokenBalance) error
	ListByOwner(ctx context.Context, owner string) ([]*TokenBalance, error)
}

// TokenAllowanceStore token allowance store interface
type TokenAllowanceStore interface {
	Find(ctx context.Context, id string) (*TokenAllowance, error)
	Create(ctx context.Context, tx *db.DB, allowance *TokenAllowance) error
	Update(ctx context.Context, tx *db.DB, allowance *TokenAllowance) error
}
