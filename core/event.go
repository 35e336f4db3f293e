package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Event sources. A source labels the contract role a log was emitted by;
// together with the event name it selects the handler.
const (
	EventSourceTroveManager       = "troveManager"
	EventSourceBorrowerOperations = "borrowerOperations"
	EventSourceStabilityPool      = "stabilityPool"
	EventSourceStaking            = "staking"
	EventSourcePriceFeed          = "priceFeed"
	EventSourceCollSurplusPool    = "collSurplusPool"
	EventSourceToken              = "token"
)

// Event names
const (
	EventTroveUpdated           = "TroveUpdated"
	EventTroveLiquidated        = "TroveLiquidated"
	EventLiquidation            = "Liquidation"
	EventRedemption             = "Redemption"
	EventLTermsUpdated          = "LTermsUpdated"
	EventUserDepositChanged     = "UserDepositChanged"
	EventETHGainWithdrawn       = "ETHGainWithdrawn"
	EventStakeChanged           = "StakeChanged"
	EventStakingGainsWithdrawn  = "StakingGainsWithdrawn"
	EventPriceUpdated           = "PriceUpdated"
	EventTransfer               = "Transfer"
	EventApproval               = "Approval"
	EventCollBalanceUpdated     = "CollBalanceUpdated"
)

// ChainEvent one decoded contract log, persisted in replay order. The row ID
// is allocated by the syncer in (block, txIndex, logIndex) order; the unique
// (tx hash, log index) key makes re-ingestion idempotent.
type ChainEvent struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Source      string          `sql:"size:24" json:"source"`
	Name        string          `sql:"size:36" json:"name"`
	Contract    string          `sql:"size:42" json:"contract"`
	TxHash      string          `sql:"size:66;unique_index:idx_chain_events_log" json:"tx_hash"`
	LogIndex    uint            `sql:"unique_index:idx_chain_events_log" json:"log_index"`
	TxIndex     uint            `json:"tx_index"`
	TxSender    string          `sql:"size:42" json:"tx_sender"`
	BlockNumber uint64          `sql:"index:idx_chain_events_block" json:"block_number"`
	BlockTime   time.Time       `json:"block_time"`
	Params      types.JSONText  `sql:"type:TEXT" json:"params"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Key dispatch key
func (e *ChainEvent) Key() string {
	return e.Source + "." + e.Name
}

// SetParams encodes params as the event payload.
func (e *ChainEvent) SetParams(params map[string]string) error {
	bs, err := json.Marshal(params)
	if err != nil {
		return err
	}

	e.Params = bs
	return nil
}

func (e *ChainEvent) param(key string) (string, error) {
	var params map[string]string
	if err := json.Unmarshal(e.Params, &params); err != nil {
		return "", fmt.Errorf("event %d: decode params: %w", e.ID, err)
	}

	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("event %d %s: %q: %w", e.ID, e.Key(), key, ErrMissingParam)
	}

	return v, nil
}

// ParamRaw reads an unscaled integer parameter.
func (e *ChainEvent) ParamRaw(key string) (decimal.Decimal, error) {
	v, err := e.param(key)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("event %d %s: %q: %w", e.ID, e.Key(), key, err)
	}

	return d, nil
}

// ParamInt reads a small integer parameter, such as an operation code.
func (e *ChainEvent) ParamInt(key string) (int64, error) {
	v, err := e.param(key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("event %d %s: %q: %w", e.ID, e.Key(), key, err)
	}

	return n, nil
}

// ParamAddress reads an address parameter.
func (e *ChainEvent) ParamAddress(key string) (string, error) {
	return e.param(key)
}

// EventStore chain event store interface
type EventStore interface {
	// Create persists the event, silently succeeding if the same
	// (tx hash, log index) pair is already stored.
	Create(ctx context.Context, event *ChainEvent) error
	List(ctx context.Context, fromID uint64, limit int) ([]*ChainEvent, error)
	Count(ctx context.Context) (int64, error)
}
