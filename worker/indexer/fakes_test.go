package indexer

import (
	"context"
	"sort"

	"trovescan/core"

	"github.com/fox-one/pkg/store/db"
)

// In-memory stores backing the scenario tests. They copy rows in and out so
// a mutation only becomes visible once the session actually writes it.

type memGlobalStore struct {
	global *core.Global
}

func (s *memGlobalStore) Find(ctx context.Context) (*core.Global, error) {
	if s.global == nil {
		return &core.Global{}, nil
	}

	g := *s.global
	return &g, nil
}

func (s *memGlobalStore) Create(ctx context.Context, tx *db.DB, global *core.Global) error {
	g := *global
	s.global = &g
	return nil
}

func (s *memGlobalStore) Update(ctx context.Context, tx *db.DB, global *core.Global) error {
	g := *global
	s.global = &g
	return nil
}

type memEventStore struct {
	events []*core.ChainEvent
}

func (s *memEventStore) Create(ctx context.Context, event *core.ChainEvent) error {
	for _, e := range s.events {
		if e.TxHash == event.TxHash && e.LogIndex == event.LogIndex {
			return nil
		}
	}

	e := *event
	e.ID = uint64(len(s.events) + 1)
	event.ID = e.ID
	s.events = append(s.events, &e)
	return nil
}

func (s *memEventStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.ChainEvent, error) {
	var out []*core.ChainEvent
	for _, e := range s.events {
		if e.ID > fromID && len(out) < limit {
			v := *e
			out = append(out, &v)
		}
	}

	return out, nil
}

func (s *memEventStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.events)), nil
}

type memTransactionStore struct {
	rows map[string]core.Transaction
}

func (s *memTransactionStore) Find(ctx context.Context, hash string) (*core.Transaction, error) {
	row := s.rows[hash]
	return &row, nil
}

func (s *memTransactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	s.rows[transaction.ID] = *transaction
	return nil
}

func (s *memTransactionStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Transaction, error) {
	var out []*core.Transaction
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq {
			v := row
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type memSystemStateStore struct {
	rows map[string]core.SystemState
}

func (s *memSystemStateStore) Find(ctx context.Context, id string) (*core.SystemState, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memSystemStateStore) Create(ctx context.Context, tx *db.DB, state *core.SystemState) error {
	s.rows[state.ID] = *state
	return nil
}

func (s *memSystemStateStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.SystemState, error) {
	var out []*core.SystemState
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq {
			v := row
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type memUserStore struct {
	rows map[string]core.User
}

func (s *memUserStore) Find(ctx context.Context, address string) (*core.User, error) {
	row := s.rows[address]
	return &row, nil
}

func (s *memUserStore) Create(ctx context.Context, tx *db.DB, user *core.User) error {
	s.rows[user.ID] = *user
	return nil
}

func (s *memUserStore) Update(ctx context.Context, tx *db.DB, user *core.User) error {
	s.rows[user.ID] = *user
	return nil
}

type memTroveStore struct {
	rows map[string]core.Trove
}

func (s *memTroveStore) Find(ctx context.Context, id string) (*core.Trove, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memTroveStore) ListByOwner(ctx context.Context, owner string) ([]*core.Trove, error) {
	var out []*core.Trove
	for _, row := range s.rows {
		if row.OwnerID == owner {
			v := row
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *memTroveStore) Create(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	s.rows[trove.ID] = *trove
	return nil
}

func (s *memTroveStore) Update(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	s.rows[trove.ID] = *trove
	return nil
}

type memTroveChangeStore struct {
	rows []*core.TroveChange
}

func (s *memTroveChangeStore) Create(ctx context.Context, tx *db.DB, change *core.TroveChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memTroveChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.TroveChange, error) {
	var out []*core.TroveChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *memTroveChangeStore) ListByTrove(ctx context.Context, troveID string) ([]*core.TroveChange, error) {
	var out []*core.TroveChange
	for _, row := range s.rows {
		if row.TroveID == troveID {
			out = append(out, row)
		}
	}

	return out, nil
}

type memDepositStore struct {
	rows map[string]core.StabilityDeposit
}

func (s *memDepositStore) Find(ctx context.Context, id string) (*core.StabilityDeposit, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memDepositStore) ListByOwner(ctx context.Context, owner string) ([]*core.StabilityDeposit, error) {
	var out []*core.StabilityDeposit
	for _, row := range s.rows {
		if row.OwnerID == owner {
			v := row
			out = append(out, &v)
		}
	}

	return out, nil
}

func (s *memDepositStore) Create(ctx context.Context, tx *db.DB, deposit *core.StabilityDeposit) error {
	s.rows[deposit.ID] = *deposit
	return nil
}

func (s *memDepositStore) Update(ctx context.Context, tx *db.DB, deposit *core.StabilityDeposit) error {
	s.rows[deposit.ID] = *deposit
	return nil
}

type memDepositChangeStore struct {
	rows []*core.StabilityDepositChange
}

func (s *memDepositChangeStore) Create(ctx context.Context, tx *db.DB, change *core.StabilityDepositChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memDepositChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.StabilityDepositChange, error) {
	var out []*core.StabilityDepositChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *memDepositChangeStore) ListByDeposit(ctx context.Context, depositID string) ([]*core.StabilityDepositChange, error) {
	var out []*core.StabilityDepositChange
	for _, row := range s.rows {
		if row.StabilityDepositID == depositID {
			out = append(out, row)
		}
	}

	return out, nil
}

type memStakeStore struct {
	rows map[string]core.Stake
}

func (s *memStakeStore) Find(ctx context.Context, id string) (*core.Stake, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memStakeStore) Create(ctx context.Context, tx *db.DB, stake *core.Stake) error {
	s.rows[stake.ID] = *stake
	return nil
}

func (s *memStakeStore) Update(ctx context.Context, tx *db.DB, stake *core.Stake) error {
	s.rows[stake.ID] = *stake
	return nil
}

type memStakeChangeStore struct {
	rows []*core.StakeChange
}

func (s *memStakeChangeStore) Create(ctx context.Context, tx *db.DB, change *core.StakeChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memStakeChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.StakeChange, error) {
	var out []*core.StakeChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *memStakeChangeStore) ListByStake(ctx context.Context, stakeID string) ([]*core.StakeChange, error) {
	var out []*core.StakeChange
	for _, row := range s.rows {
		if row.StakeID == stakeID {
			out = append(out, row)
		}
	}

	return out, nil
}

type memLiquidationStore struct {
	rows map[string]core.Liquidation
}

func (s *memLiquidationStore) Find(ctx context.Context, id string) (*core.Liquidation, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memLiquidationStore) Create(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	s.rows[liquidation.ID] = *liquidation
	return nil
}

func (s *memLiquidationStore) Update(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	s.rows[liquidation.ID] = *liquidation
	return nil
}

func (s *memLiquidationStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Liquidation, error) {
	var out []*core.Liquidation
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq {
			v := row
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type memRedemptionStore struct {
	rows map[string]core.Redemption
}

func (s *memRedemptionStore) Find(ctx context.Context, id string) (*core.Redemption, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memRedemptionStore) Create(ctx context.Context, tx *db.DB, redemption *core.Redemption) error {
	s.rows[redemption.ID] = *redemption
	return nil
}

func (s *memRedemptionStore) Update(ctx context.Context, tx *db.DB, redemption *core.Redemption) error {
	s.rows[redemption.ID] = *redemption
	return nil
}

func (s *memRedemptionStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Redemption, error) {
	var out []*core.Redemption
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq {
			v := row
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

type memTokenStore struct {
	rows map[string]core.Token
}

func (s *memTokenStore) Find(ctx context.Context, id string) (*core.Token, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memTokenStore) Create(ctx context.Context, tx *db.DB, token *core.Token) error {
	s.rows[token.ID] = *token
	return nil
}

func (s *memTokenStore) Update(ctx context.Context, tx *db.DB, token *core.Token) error {
	s.rows[token.ID] = *token
	return nil
}

type memTokenChangeStore struct {
	rows []*core.TokenChange
}

func (s *memTokenChangeStore) Create(ctx context.Context, tx *db.DB, change *core.TokenChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memTokenChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.TokenChange, error) {
	var out []*core.TokenChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *memTokenChangeStore) ListByToken(ctx context.Context, tokenID string) ([]*core.TokenChange, error) {
	var out []*core.TokenChange
	for _, row := range s.rows {
		if row.TokenID == tokenID {
			out = append(out, row)
		}
	}

	return out, nil
}

type memTokenBalanceStore struct {
	rows map[string]core.TokenBalance
}

func (s *memTokenBalanceStore) Find(ctx context.Context, id string) (*core.TokenBalance, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memTokenBalanceStore) Create(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	s.rows[balance.ID] = *balance
	return nil
}

func (s *memTokenBalanceStore) Update(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	s.rows[balance.ID] = *balance
	return nil
}

func (s *memTokenBalanceStore) ListByOwner(ctx context.Context, owner string) ([]*core.TokenBalance, error) {
	var out []*core.TokenBalance
	for _, row := range s.rows {
		if row.OwnerID == owner {
			v := row
			out = append(out, &v)
		}
	}

	return out, nil
}

type memTokenAllowanceStore struct {
	rows map[string]core.TokenAllowance
}

func (s *memTokenAllowanceStore) Find(ctx context.Context, id string) (*core.TokenAllowance, error) {
	row := s.rows[id]
	return &row, nil
}

func (s *memTokenAllowanceStore) Create(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	s.rows[allowance.ID] = *allowance
	return nil
}

func (s *memTokenAllowanceStore) Update(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	s.rows[allowance.ID] = *allowance
	return nil
}

type memPriceChangeStore struct {
	rows []*core.PriceChange
}

func (s *memPriceChangeStore) Create(ctx context.Context, tx *db.DB, change *core.PriceChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memPriceChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.PriceChange, error) {
	var out []*core.PriceChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

type memCollSurplusChangeStore struct {
	rows []*core.CollSurplusChange
}

func (s *memCollSurplusChangeStore) Create(ctx context.Context, tx *db.DB, change *core.CollSurplusChange) error {
	v := *change
	s.rows = append(s.rows, &v)
	return nil
}

func (s *memCollSurplusChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.CollSurplusChange, error) {
	var out []*core.CollSurplusChange
	for _, row := range s.rows {
		if row.SequenceNumber >= fromSeq && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *memCollSurplusChangeStore) ListByOwner(ctx context.Context, owner string, limit int) ([]*core.CollSurplusChange, error) {
	var out []*core.CollSurplusChange
	for _, row := range s.rows {
		if row.OwnerID == owner && len(out) < limit {
			out = append(out, row)
		}
	}

	return out, nil
}

type testStores struct {
	globals            *memGlobalStore
	events             *memEventStore
	transactions       *memTransactionStore
	systemStates       *memSystemStateStore
	users              *memUserStore
	troves             *memTroveStore
	troveChanges       *memTroveChangeStore
	deposits           *memDepositStore
	depositChanges     *memDepositChangeStore
	stakes             *memStakeStore
	stakeChanges       *memStakeChangeStore
	liquidations       *memLiquidationStore
	redemptions        *memRedemptionStore
	tokens             *memTokenStore
	tokenChanges       *memTokenChangeStore
	tokenBalances      *memTokenBalanceStore
	tokenAllowances    *memTokenAllowanceStore
	priceChanges       *memPriceChangeStore
	collSurplusChanges *memCollSurplusChangeStore
}

func newTestIndexer(watches []core.Watch) (*Indexer, *testStores) {
	st := &testStores{
		globals:            &memGlobalStore{},
		events:             &memEventStore{},
		transactions:       &memTransactionStore{rows: map[string]core.Transaction{}},
		systemStates:       &memSystemStateStore{rows: map[string]core.SystemState{}},
		users:              &memUserStore{rows: map[string]core.User{}},
		troves:             &memTroveStore{rows: map[string]core.Trove{}},
		troveChanges:       &memTroveChangeStore{},
		deposits:           &memDepositStore{rows: map[string]core.StabilityDeposit{}},
		depositChanges:     &memDepositChangeStore{},
		stakes:             &memStakeStore{rows: map[string]core.Stake{}},
		stakeChanges:       &memStakeChangeStore{},
		liquidations:       &memLiquidationStore{rows: map[string]core.Liquidation{}},
		redemptions:        &memRedemptionStore{rows: map[string]core.Redemption{}},
		tokens:             &memTokenStore{rows: map[string]core.Token{}},
		tokenChanges:       &memTokenChangeStore{},
		tokenBalances:      &memTokenBalanceStore{rows: map[string]core.TokenBalance{}},
		tokenAllowances:    &memTokenAllowanceStore{rows: map[string]core.TokenAllowance{}},
		priceChanges:       &memPriceChangeStore{},
		collSurplusChanges: &memCollSurplusChangeStore{},
	}

	ind := New(
		nil, watches,
		st.globals, st.events, st.transactions, st.systemStates,
		st.users, st.troves, st.troveChanges,
		st.deposits, st.depositChanges,
		st.stakes, st.stakeChanges,
		st.liquidations, st.redemptions,
		st.tokens, st.tokenChanges, st.tokenBalances, st.tokenAllowances,
		st.priceChanges, st.collSurplusChanges,
	)
	ind.txRunner = func(fn func(tx *db.DB) error) error {
		return fn(nil)
	}

	return ind, st
}
