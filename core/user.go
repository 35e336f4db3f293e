package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// User one row per wallet address, created lazily on first reference.
// TroveCount and StabilityDepositCount number the successive incarnations of
// this owner's trove and deposit; closing one and reopening creates a fresh
// entity row rather than reviving the old one.
type User struct {
	ID                        string          `sql:"size:42;PRIMARY_KEY" json:"id"`
	CurrentTroveID            string          `sql:"size:50" json:"current_trove_id"`
	CurrentStabilityDepositID string          `sql:"size:50" json:"current_stability_deposit_id"`
	StakeID                   string          `sql:"size:42" json:"stake_id"`
	TroveCount                int64           `sql:"default:0" json:"trove_count"`
	StabilityDepositCount     int64           `sql:"default:0" json:"stability_deposit_count"`
	CollSurplus               decimal.Decimal `sql:"type:decimal(39,18);default:0" json:"coll_surplus"`
	Version                   int64           `sql:"default:0" json:"version"`
	CreatedAt                 time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt                 time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewUser a fresh user row for an address
func NewUser(address string) *User {
	return &User{
		ID:          address,
		CollSurplus: decimal.Zero,
	}
}

// NextTroveID allocates the ID of this owner's next trove incarnation.
func (u *User) NextTroveID() string {
	id := fmt.Sprintf("%s-%d", u.ID, u.TroveCount)
	u.TroveCount++
	return id
}

// NextStabilityDepositID allocates the ID of this owner's next deposit
// incarnation.
func (u *User) NextStabilityDepositID() string {
	id := fmt.Sprintf("%s-%d", u.ID, u.StabilityDepositCount)
	u.StabilityDepositCount++
	return id
}

// UserStore user store interface
type UserStore interface {
	// Find returns the zero user when the address is unknown.
	Find(ctx context.Context, address string) (*User, error)
	Create(ctx context.Context, tx *db.DB, user *User) error
	Update(ctx context.Context, tx *db.DB, user *User) error
}
