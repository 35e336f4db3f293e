package indexer

import (
	"context"
	"fmt"
	"strconv"

	"trovescan/core"

	"github.com/fox-one/pkg/store/db"
)

// session is the unit of work for one event. It caches every row the event's
// handlers touch so that a handler re-reading an entity it already mutated
// (TroveLiquidated updates the same trove twice) sees its own writes, and it
// advances the replay cursor as its last act inside the event's transaction.
type session struct {
	ctx   context.Context
	tx    *db.DB
	ind   *Indexer
	event *core.ChainEvent

	global      *core.Global
	systemState *core.SystemState
	transaction *core.Transaction
	liquidation *core.Liquidation
	redemption  *core.Redemption

	users    map[string]*core.User
	troves   map[string]*core.Trove
	deposits map[string]*core.StabilityDeposit
	stakes   map[string]*core.Stake
}

func (w *Indexer) newSession(ctx context.Context, tx *db.DB, event *core.ChainEvent) (*session, error) {
	global, err := w.globals.Find(ctx)
	if err != nil {
		return nil, err
	}

	if global.ID == "" {
		global = core.NewGlobal()
		if err := w.globals.Create(ctx, tx, global); err != nil {
			return nil, err
		}
	}

	return &session{
		ctx:      ctx,
		tx:       tx,
		ind:      w,
		event:    event,
		global:   global,
		users:    map[string]*core.User{},
		troves:   map[string]*core.Trove{},
		deposits: map[string]*core.StabilityDeposit{},
		stakes:   map[string]*core.Stake{},
	}, nil
}

func (s *session) handle() error {
	switch s.event.Key() {
	case core.EventSourceBorrowerOperations + "." + core.EventTroveUpdated:
		return s.handleBorrowerTroveUpdated()
	case core.EventSourceTroveManager + "." + core.EventTroveUpdated:
		return s.handleTroveManagerTroveUpdated()
	case core.EventSourceTroveManager + "." + core.EventTroveLiquidated:
		return s.handleTroveLiquidated()
	case core.EventSourceTroveManager + "." + core.EventLiquidation:
		return s.handleLiquidation()
	case core.EventSourceTroveManager + "." + core.EventRedemption:
		return s.handleRedemption()
	case core.EventSourceTroveManager + "." + core.EventLTermsUpdated:
		return s.handleLTermsUpdated()
	case core.EventSourceStabilityPool + "." + core.EventUserDepositChanged:
		return s.handleUserDepositChanged()
	case core.EventSourceStabilityPool + "." + core.EventETHGainWithdrawn:
		return s.handleCollateralGainWithdrawn()
	case core.EventSourceStaking + "." + core.EventStakeChanged:
		return s.handleStakeChanged()
	case core.EventSourceStaking + "." + core.EventStakingGainsWithdrawn:
		return s.handleStakingGainsWithdrawn()
	case core.EventSourcePriceFeed + "." + core.EventPriceUpdated:
		return s.handlePriceUpdated()
	case core.EventSourceCollSurplusPool + "." + core.EventCollBalanceUpdated:
		return s.handleCollBalanceUpdated()
	case core.EventSourceToken + "." + core.EventTransfer:
		return s.handleTransfer()
	case core.EventSourceToken + "." + core.EventApproval:
		return s.handleApproval()
	}

	return fmt.Errorf("event %d %q: %w", s.event.ID, s.event.Key(), core.ErrUnknownEvent)
}

// finish advances the replay cursor and persists the global row, counters and
// pointers included.
func (s *session) finish() error {
	s.global.LastProcessedEvent = s.event.ID
	return s.ind.globals.Update(s.ctx, s.tx, s.global)
}

func (s *session) getTransaction() (*core.Transaction, error) {
	if s.transaction != nil {
		return s.transaction, nil
	}

	transaction, err := s.ind.transactions.Find(s.ctx, s.event.TxHash)
	if err != nil {
		return nil, err
	}

	if transaction.ID == "" {
		transaction = &core.Transaction{
			ID:             s.event.TxHash,
			SequenceNumber: s.global.NextTransactionSequence(),
			BlockNumber:    s.event.BlockNumber,
			Timestamp:      s.event.BlockTime,
		}

		if err := s.ind.transactions.Create(s.ctx, s.tx, transaction); err != nil {
			return nil, err
		}
	}

	s.transaction = transaction
	return transaction, nil
}

func (s *session) user(address string) (*core.User, error) {
	if user, ok := s.users[address]; ok {
		return user, nil
	}

	user, err := s.ind.users.Find(s.ctx, address)
	if err != nil {
		return nil, err
	}

	if user.ID == "" {
		user = core.NewUser(address)
		if err := s.ind.users.Create(s.ctx, s.tx, user); err != nil {
			return nil, err
		}
	}

	s.users[address] = user
	return user, nil
}

func (s *session) saveUser(user *core.User) error {
	return s.ind.users.Update(s.ctx, s.tx, user)
}

func sequenceID(seq int64) string {
	return strconv.FormatInt(seq, 10)
}
