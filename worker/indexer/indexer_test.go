package indexer

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	alice  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bob    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	carol  = "0xcccccccccccccccccccccccccccccccccccccccc"
	dave   = "0xdddddddddddddddddddddddddddddddddddddddd"
	keeper = "0x1111111111111111111111111111111111111111"

	tokenContract = "0x2222222222222222222222222222222222222222"
)

func raw(v string) string {
	return number.Decimal(v).Mul(number.ScalingFactor).String()
}

type feed struct {
	id  uint64
	log uint
}

func (f *feed) event(source, name, txHash string, params map[string]string) *core.ChainEvent {
	f.id++
	f.log++

	contract := "0x9999999999999999999999999999999999999999"
	if source == core.EventSourceToken {
		contract = tokenContract
	}

	event := &core.ChainEvent{
		ID:          f.id,
		Source:      source,
		Name:        name,
		Contract:    contract,
		TxHash:      txHash,
		LogIndex:    f.log,
		TxSender:    keeper,
		BlockNumber: f.id,
		BlockTime:   time.Unix(1600000000+int64(f.id), 0),
	}
	if err := event.SetParams(params); err != nil {
		panic(err)
	}

	return event
}

func (f *feed) openTrove(tx, borrower, coll, debt string) *core.ChainEvent {
	return f.troveUpdated(core.EventSourceBorrowerOperations, tx, borrower, coll, debt, 0)
}

func (f *feed) troveUpdated(source, tx, borrower, coll, debt string, op int) *core.ChainEvent {
	return f.event(source, core.EventTroveUpdated, tx, map[string]string{
		"borrower":  borrower,
		"coll":      raw(coll),
		"debt":      raw(debt),
		"stake":     raw(coll),
		"operation": strconv.Itoa(op),
	})
}

func (f *feed) troveLiquidated(tx, borrower, coll, debt string, op int) *core.ChainEvent {
	return f.event(core.EventSourceTroveManager, core.EventTroveLiquidated, tx, map[string]string{
		"borrower":  borrower,
		"coll":      raw(coll),
		"debt":      raw(debt),
		"operation": strconv.Itoa(op),
	})
}

func (f *feed) liquidation(tx, coll, debt, collGas, tokenGas string) *core.ChainEvent {
	return f.event(core.EventSourceTroveManager, core.EventLiquidation, tx, map[string]string{
		"liquidatedColl":       raw(coll),
		"liquidatedDebt":       raw(debt),
		"collGasCompensation":  raw(collGas),
		"tokenGasCompensation": raw(tokenGas),
	})
}

func (f *feed) depositChanged(tx, depositor, amount string) *core.ChainEvent {
	return f.event(core.EventSourceStabilityPool, core.EventUserDepositChanged, tx, map[string]string{
		"depositor":  depositor,
		"newDeposit": raw(amount),
	})
}

func (f *feed) transfer(tx, from, to, value string) *core.ChainEvent {
	return f.event(core.EventSourceToken, core.EventTransfer, tx, map[string]string{
		"from":  from,
		"to":    to,
		"value": raw(value),
	})
}

func process(t *testing.T, ind *Indexer, events ...*core.ChainEvent) {
	t.Helper()
	ctx := context.Background()
	for _, event := range events {
		require.NoError(t, ind.ProcessEvent(ctx, event))
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(number.Decimal(want)), "want %s got %s", want, got)
}

func currentState(t *testing.T, st *testStores) *core.SystemState {
	t.Helper()
	state, err := st.systemStates.Find(context.Background(), st.globals.global.CurrentSystemStateID)
	require.NoError(t, err)
	return state
}

func TestTransactionRegistryIdempotent(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	process(t, ind,
		f.openTrove("0xt1", alice, "10", "2000"),
		f.depositChanged("0xt1", alice, "500"),
		f.openTrove("0xt2", bob, "4", "700"),
	)

	require.Len(t, st.transactions.rows, 2)
	require.EqualValues(t, 0, st.transactions.rows["0xt1"].SequenceNumber)
	require.EqualValues(t, 1, st.transactions.rows["0xt2"].SequenceNumber)
	require.EqualValues(t, 2, st.globals.global.TransactionCount)
}

func TestTroveIncarnationUniqueness(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	process(t, ind,
		f.openTrove("0xt1", alice, "10", "2000"),
		f.troveUpdated(core.EventSourceBorrowerOperations, "0xt2", alice, "0", "0", 1),
		f.openTrove("0xt3", alice, "3", "500"),
		f.troveUpdated(core.EventSourceBorrowerOperations, "0xt4", alice, "0", "0", 1),
		f.openTrove("0xt5", alice, "7", "900"),
	)

	user := st.users.rows[alice]
	require.Equal(t, alice+"-2", user.CurrentTroveID)
	require.EqualValues(t, 3, user.TroveCount)

	for i, want := range []string{core.TroveStatusClosedByOwner, core.TroveStatusClosedByOwner, core.TroveStatusOpen} {
		trove := st.troves.rows[alice+"-"+strconv.Itoa(i)]
		require.Equal(t, want, trove.Status, "incarnation %d", i)
	}

	global := st.globals.global
	require.EqualValues(t, 1, global.NumberOfOpenTroves)
	require.EqualValues(t, 2, global.NumberOfTrovesClosedByOwner)
	require.EqualValues(t, 3, global.TotalNumberOfTroves)
	require.EqualValues(t, global.NumberOfOpenTroves,
		global.TotalNumberOfTroves-global.NumberOfLiquidatedTroves-global.NumberOfRedeemedTroves-global.NumberOfTrovesClosedByOwner)
}

func TestStabilityPoolOffset(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	process(t, ind,
		f.openTrove("0xt1", alice, "13", "2600"),
		f.openTrove("0xt2", bob, "2", "400"),
		f.openTrove("0xt3", carol, "5", "1000"),
		f.depositChanged("0xt4", dave, "1000"),
	)

	state := currentState(t, st)
	requireDecimal(t, "20", state.TotalCollateral)
	requireDecimal(t, "4000", state.TotalDebt)
	requireDecimal(t, "1000", state.TokensInStabilityPool)
	requireDecimal(t, "200", state.Price)

	// pool covers the debt, full offset
	process(t, ind,
		f.troveLiquidated("0xt5", bob, "2", "400", 1),
		f.liquidation("0xt5", "2", "400", "0.01", "200"),
	)

	state = currentState(t, st)
	requireDecimal(t, "18", state.TotalCollateral)
	requireDecimal(t, "3600", state.TotalDebt)
	requireDecimal(t, "600", state.TokensInStabilityPool)

	// pool short of the debt, drained with pro-rata collateral
	process(t, ind,
		f.troveLiquidated("0xt6", carol, "5", "1000", 1),
		f.liquidation("0xt6", "5", "1000", "0.025", "200"),
	)

	state = currentState(t, st)
	requireDecimal(t, "15", state.TotalCollateral)
	requireDecimal(t, "3000", state.TotalDebt)
	requireDecimal(t, "0", state.TokensInStabilityPool)
	require.True(t, state.TotalCollateralRatio.Valid)
	requireDecimal(t, "1", state.TotalCollateralRatio.Decimal)

	require.Equal(t, core.TroveStatusLiquidated, st.troves.rows[bob+"-0"].Status)
	require.Equal(t, core.TroveStatusLiquidated, st.troves.rows[carol+"-0"].Status)
	require.EqualValues(t, 2, st.globals.global.NumberOfLiquidatedTroves)
}

func TestRecoveryModeLiquidationSkipsOffsetBelowOne(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	// ratio before the liquidation is 1*200/300 < 1: the pool is not
	// touched, the totals are left for redistribution
	process(t, ind,
		f.openTrove("0xt1", alice, "1", "300"),
		f.depositChanged("0xt2", dave, "500"),
		f.troveLiquidated("0xt3", alice, "1", "300", 2),
		f.liquidation("0xt3", "1", "300", "0.005", "200"),
	)

	state := currentState(t, st)
	requireDecimal(t, "1", state.TotalCollateral)
	requireDecimal(t, "300", state.TotalDebt)
	requireDecimal(t, "500", state.TokensInStabilityPool)

	require.Equal(t, core.TroveStatusLiquidated, st.troves.rows[alice+"-0"].Status)
}

func TestRecoveryModeLiquidationOffsetsAboveOne(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	// ratio before the liquidation is 2*200/300 > 1: the offset applies
	// exactly as in normal mode
	process(t, ind,
		f.openTrove("0xt1", alice, "2", "300"),
		f.depositChanged("0xt2", dave, "500"),
		f.troveLiquidated("0xt3", alice, "2", "300", 2),
		f.liquidation("0xt3", "2", "300", "0.01", "200"),
	)

	state := currentState(t, st)
	requireDecimal(t, "0", state.TotalCollateral)
	requireDecimal(t, "0", state.TotalDebt)
	requireDecimal(t, "200", state.TokensInStabilityPool)

	require.Equal(t, core.TroveStatusLiquidated, st.troves.rows[alice+"-0"].Status)
}

func TestLiquidationAccumulateThenFinish(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	process(t, ind,
		f.openTrove("0xt1", alice, "2", "400"),
		f.openTrove("0xt2", bob, "3", "600"),
		f.troveLiquidated("0xt3", alice, "2", "400", 1),
		f.troveLiquidated("0xt3", bob, "3", "600", 1),
	)

	var ids []string
	for _, change := range st.troveChanges.rows {
		if change.Operation.IsLiquidation() {
			ids = append(ids, change.LiquidationID)
		}
	}
	require.Len(t, ids, 2)
	require.Equal(t, ids[0], ids[1])
	require.Equal(t, ids[0], st.globals.global.CurrentLiquidationID)

	process(t, ind, f.liquidation("0xt3", "5", "1000", "0.025", "200"))

	require.Empty(t, st.globals.global.CurrentLiquidationID)
	liquidation := st.liquidations.rows[ids[0]]
	require.Equal(t, keeper, liquidation.LiquidatorID)
	requireDecimal(t, "5", liquidation.LiquidatedCollateral)
	requireDecimal(t, "1000", liquidation.LiquidatedDebt)
	requireDecimal(t, "0.025", liquidation.CollGasCompensation)
	requireDecimal(t, "200", liquidation.TokenGasCompensation)

	// the next liquidation starts a fresh row
	process(t, ind,
		f.openTrove("0xt4", carol, "1", "200"),
		f.troveLiquidated("0xt5", carol, "1", "200", 1),
	)
	require.NotEqual(t, ids[0], st.globals.global.CurrentLiquidationID)
}

func TestLiquidationFinishWithoutCurrentIsFatal(t *testing.T) {
	ind, _ := newTestIndexer(nil)
	f := &feed{}

	err := ind.ProcessEvent(context.Background(), f.liquidation("0xt1", "5", "1000", "0", "0"))
	require.ErrorIs(t, err, core.ErrNoCurrentLiquidation)
	require.True(t, fatal(err))
}

func TestRedemptionPartiality(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	redemption := func(tx, attempted, actual, sent, fee string) *core.ChainEvent {
		return f.event(core.EventSourceTroveManager, core.EventRedemption, tx, map[string]string{
			"attemptedTokenAmount": raw(attempted),
			"actualTokenAmount":    raw(actual),
			"collateralSent":       raw(sent),
			"collateralFee":        raw(fee),
		})
	}

	process(t, ind,
		f.openTrove("0xt1", alice, "10", "2000"),
		f.troveUpdated(core.EventSourceTroveManager, "0xt2", alice, "9.585", "1917", 3),
		redemption("0xt2", "100", "83", "0.415", "0.004"),
	)

	first := st.redemptions.rows["0"]
	require.True(t, first.Partial)
	requireDecimal(t, "100", first.TokensAttemptedToRedeem)
	requireDecimal(t, "83", first.TokensActuallyRedeemed)
	requireDecimal(t, "0.415", first.CollateralRedeemed)
	requireDecimal(t, "0.004", first.Fee)
	require.Empty(t, st.globals.global.CurrentRedemptionID)

	process(t, ind,
		f.troveUpdated(core.EventSourceTroveManager, "0xt3", alice, "9.085", "1817", 3),
		redemption("0xt3", "100", "100", "0.5", "0.005"),
	)

	second := st.redemptions.rows["1"]
	require.False(t, second.Partial)
	requireDecimal(t, "0.009", st.globals.global.TotalRedemptionFeesPaid)
}

func TestRedemptionFinishWithoutCurrentIsFatal(t *testing.T) {
	ind, _ := newTestIndexer(nil)
	f := &feed{}

	event := f.event(core.EventSourceTroveManager, core.EventRedemption, "0xt1", map[string]string{
		"attemptedTokenAmount": raw("100"),
		"actualTokenAmount":    raw("100"),
		"collateralSent":       raw("0.5"),
		"collateralFee":        raw("0.005"),
	})

	err := ind.ProcessEvent(context.Background(), event)
	require.ErrorIs(t, err, core.ErrNoCurrentRedemption)
	require.True(t, fatal(err))
}

func TestMintBurnTransferBookkeeping(t *testing.T) {
	watches := []core.Watch{{
		Source:  core.EventSourceToken,
		Address: tokenContract,
		Symbol:  "TUSD",
		Name:    "Trove USD",
	}}
	ind, st := newTestIndexer(watches)
	f := &feed{}

	process(t, ind,
		f.transfer("0xt1", core.ZeroAddress, alice, "100"),
		f.transfer("0xt2", alice, bob, "40"),
		f.transfer("0xt3", bob, core.ZeroAddress, "40"),
	)

	token := st.tokens.rows[tokenContract]
	require.Equal(t, "TUSD", token.Symbol)
	requireDecimal(t, "60", token.TotalSupply)

	requireDecimal(t, "60", st.tokenBalances.rows[core.TokenBalanceID(tokenContract, alice)].Balance)
	requireDecimal(t, "0", st.tokenBalances.rows[core.TokenBalanceID(tokenContract, bob)].Balance)

	require.Len(t, st.tokenChanges.rows, 2)
	require.Equal(t, core.TokenOperationMint, st.tokenChanges.rows[0].Operation)
	requireDecimal(t, "100", st.tokenChanges.rows[0].TotalSupplyChange)
	require.Equal(t, core.TokenOperationBurn, st.tokenChanges.rows[1].Operation)
	requireDecimal(t, "-40", st.tokenChanges.rows[1].TotalSupplyChange)
}

func TestTokenWatchMatchesChecksummedAddress(t *testing.T) {
	// config may carry the checksummed casing; events arrive lowercased
	watches := []core.Watch{{
		Source:  core.EventSourceToken,
		Address: "0xAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCd",
		Symbol:  "TUSD",
		Name:    "Trove USD",
	}}
	ind, st := newTestIndexer(watches)
	f := &feed{}

	contract := strings.ToLower(watches[0].Address)
	event := f.transfer("0xt1", core.ZeroAddress, alice, "5")
	event.Contract = contract
	process(t, ind, event)

	token := st.tokens.rows[contract]
	require.Equal(t, "TUSD", token.Symbol)
	require.Equal(t, "Trove USD", token.Name)
}

func TestTokenApprovalOverwrites(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	approval := func(tx, value string) *core.ChainEvent {
		return f.event(core.EventSourceToken, core.EventApproval, tx, map[string]string{
			"owner":   alice,
			"spender": bob,
			"value":   raw(value),
		})
	}

	process(t, ind, approval("0xt1", "50"), approval("0xt2", "0"))

	allowance := st.tokenAllowances.rows[core.TokenAllowanceID(tokenContract, alice, bob)]
	requireDecimal(t, "0", allowance.Value)
	require.Len(t, st.tokenAllowances.rows, 1)
}

func TestPriceUpdate(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	priceUpdated := func(tx, price string) *core.ChainEvent {
		return f.event(core.EventSourcePriceFeed, core.EventPriceUpdated, tx, map[string]string{
			"newPrice": raw(price),
		})
	}

	process(t, ind, priceUpdated("0xt1", "210"))

	require.Len(t, st.priceChanges.rows, 1)
	change := st.priceChanges.rows[0]
	requireDecimal(t, "200", change.PriceBefore)
	requireDecimal(t, "210", change.PriceAfter)
	requireDecimal(t, "10", change.PriceChange)
	require.NotEqual(t, change.SystemStateBeforeID, change.SystemStateAfterID)
	requireDecimal(t, "210", currentState(t, st).Price)

	// unchanged price writes nothing
	process(t, ind, priceUpdated("0xt2", "210"))
	require.Len(t, st.priceChanges.rows, 1)
	require.EqualValues(t, 2, st.globals.global.SystemStateCount)
}

func TestStakeLifecycle(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	stakeChanged := func(tx, amount string) *core.ChainEvent {
		return f.event(core.EventSourceStaking, core.EventStakeChanged, tx, map[string]string{
			"staker":   alice,
			"newStake": raw(amount),
		})
	}
	gains := func(tx, tokenGain, collGain string) *core.ChainEvent {
		return f.event(core.EventSourceStaking, core.EventStakingGainsWithdrawn, tx, map[string]string{
			"staker":         alice,
			"tokenGain":      raw(tokenGain),
			"collateralGain": raw(collGain),
		})
	}

	process(t, ind,
		stakeChanged("0xt1", "10"),
		stakeChanged("0xt2", "15"),
		stakeChanged("0xt3", "0"),
		stakeChanged("0xt4", "5"),
		gains("0xt5", "0", "0"),
		gains("0xt6", "1.5", "0.02"),
	)

	ops := make([]core.StakeOperation, 0, len(st.stakeChanges.rows))
	for _, change := range st.stakeChanges.rows {
		ops = append(ops, change.Operation)
	}
	require.Equal(t, []core.StakeOperation{
		core.StakeOperationStakeCreated,
		core.StakeOperationStakeIncreased,
		core.StakeOperationStakeRemoved,
		core.StakeOperationStakeCreated,
		core.StakeOperationGainsWithdrawn,
	}, ops)

	global := st.globals.global
	require.EqualValues(t, 1, global.TotalNumberOfStakes)
	require.EqualValues(t, 1, global.NumberOfActiveStakes)

	last := st.stakeChanges.rows[len(st.stakeChanges.rows)-1]
	requireDecimal(t, "1.5", last.IssuanceGain)
	requireDecimal(t, "0.02", last.RedemptionGain)
	requireDecimal(t, "0", last.StakedAmountChange)

	requireDecimal(t, "5", st.stakes.rows[alice].Amount)
	requireDecimal(t, "5", currentState(t, st).TotalStaked)
}

func TestStabilityDepositNopSuppressed(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	gainWithdrawn := func(tx, gain, loss string) *core.ChainEvent {
		return f.event(core.EventSourceStabilityPool, core.EventETHGainWithdrawn, tx, map[string]string{
			"depositor":      alice,
			"collateralGain": raw(gain),
			"tokenLoss":      raw(loss),
		})
	}

	process(t, ind,
		f.depositChanged("0xt1", alice, "500"),
		f.depositChanged("0xt2", alice, "500"),
		gainWithdrawn("0xt3", "0", "0"),
		gainWithdrawn("0xt4", "0.25", "10"),
	)

	require.Len(t, st.depositChanges.rows, 2)

	last := st.depositChanges.rows[1]
	require.Equal(t, core.StabilityDepositOperationWithdrawCollateralGain, last.Operation)
	requireDecimal(t, "-10", last.DepositedAmountChange)
	require.True(t, last.CollateralGain.Valid)
	requireDecimal(t, "0.25", last.CollateralGain.Decimal)

	// gain withdrawals do not move the pool's token balance
	requireDecimal(t, "500", currentState(t, st).TokensInStabilityPool)
	requireDecimal(t, "490", st.deposits.rows[alice+"-0"].DepositedAmount)
}

func TestCollSurplus(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	collBalance := func(tx, balance string) *core.ChainEvent {
		return f.event(core.EventSourceCollSurplusPool, core.EventCollBalanceUpdated, tx, map[string]string{
			"account":    alice,
			"newBalance": raw(balance),
		})
	}

	process(t, ind, collBalance("0xt1", "0.7"), collBalance("0xt2", "0"))

	changes, err := st.collSurplusChanges.ListByOwner(context.Background(), alice, 10)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	requireDecimal(t, "0.7", changes[0].CollSurplusChange)
	requireDecimal(t, "-0.7", changes[1].CollSurplusChange)

	requireDecimal(t, "0", st.users.rows[alice].CollSurplus)
	requireDecimal(t, "0", currentState(t, st).CollSurplusPoolBalance)
}

func TestRedistributionSnapshotStamping(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	lTerms := f.event(core.EventSourceTroveManager, core.EventLTermsUpdated, "0xt2", map[string]string{
		"collateral": "5000000000000000",
		"debt":       "1000000000000000000",
	})

	process(t, ind,
		f.openTrove("0xt1", alice, "10", "2000"),
		lTerms,
		f.troveUpdated(core.EventSourceBorrowerOperations, "0xt3", alice, "10.05", "2010", 2),
	)

	global := st.globals.global
	requireDecimal(t, "5000000000000000", global.RawTotalRedistributedCollateral)
	requireDecimal(t, "1000000000000000000", global.RawTotalRedistributedDebt)

	trove := st.troves.rows[alice+"-0"]
	requireDecimal(t, "5000000000000000", trove.RawSnapshotOfTotalRedistributedCollateral)
	requireDecimal(t, "1000000000000000000", trove.RawSnapshotOfTotalRedistributedDebt)
}

func TestChangeSequencesMonotonic(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	process(t, ind,
		f.openTrove("0xt1", alice, "10", "2000"),
		f.depositChanged("0xt2", alice, "500"),
		f.event(core.EventSourcePriceFeed, core.EventPriceUpdated, "0xt3", map[string]string{
			"newPrice": raw("190"),
		}),
		f.transfer("0xt4", core.ZeroAddress, alice, "100"),
		f.troveLiquidated("0xt5", alice, "10", "2000", 2),
	)

	var seqs []int64
	for _, c := range st.troveChanges.rows {
		seqs = append(seqs, c.SequenceNumber)
		requireDecimal(t, c.CollateralAfter.String(), c.CollateralBefore.Add(c.CollateralChange))
		requireDecimal(t, c.DebtAfter.String(), c.DebtBefore.Add(c.DebtChange))
	}
	for _, c := range st.depositChanges.rows {
		seqs = append(seqs, c.SequenceNumber)
		requireDecimal(t, c.DepositedAmountAfter.String(), c.DepositedAmountBefore.Add(c.DepositedAmountChange))
	}
	for _, c := range st.priceChanges.rows {
		seqs = append(seqs, c.SequenceNumber)
		requireDecimal(t, c.PriceAfter.String(), c.PriceBefore.Add(c.PriceChange))
	}
	for _, c := range st.tokenChanges.rows {
		seqs = append(seqs, c.SequenceNumber)
		requireDecimal(t, c.TotalSupplyAfter.String(), c.TotalSupplyBefore.Add(c.TotalSupplyChange))
	}

	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	require.EqualValues(t, len(seqs), st.globals.global.ChangeCount)
	for i, seq := range seqs {
		require.EqualValues(t, i, seq)
	}
}

func TestUnknownOperationCodeIsFatal(t *testing.T) {
	ind, _ := newTestIndexer(nil)
	f := &feed{}

	err := ind.ProcessEvent(context.Background(), f.troveUpdated(core.EventSourceBorrowerOperations, "0xt1", alice, "10", "2000", 9))
	require.ErrorIs(t, err, core.ErrUnknownOperation)
	require.True(t, fatal(err))
}

func TestUnknownEventKeyIsFatal(t *testing.T) {
	ind, _ := newTestIndexer(nil)
	f := &feed{}

	err := ind.ProcessEvent(context.Background(), f.event("governance", "ProposalCreated", "0xt1", nil))
	require.ErrorIs(t, err, core.ErrUnknownEvent)
	require.True(t, fatal(err))
}

func TestReplayCursorAdvances(t *testing.T) {
	ind, st := newTestIndexer(nil)
	f := &feed{}

	events := []*core.ChainEvent{
		f.openTrove("0xt1", alice, "10", "2000"),
		f.depositChanged("0xt2", alice, "500"),
	}
	process(t, ind, events...)

	require.Equal(t, events[1].ID, st.globals.global.LastProcessedEvent)
}
