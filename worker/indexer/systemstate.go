package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

func (s *session) currentSystemState() (*core.SystemState, error) {
	if s.systemState != nil {
		return s.systemState, nil
	}

	if s.global.CurrentSystemStateID != "" {
		state, err := s.ind.systemStates.Find(s.ctx, s.global.CurrentSystemStateID)
		if err != nil {
			return nil, err
		}

		s.systemState = state
		return state, nil
	}

	seq := s.global.NextSystemStateSequence()
	state := &core.SystemState{
		ID:                     sequenceID(seq),
		SequenceNumber:         seq,
		Price:                  number.InitialPrice,
		TotalCollateral:        decimal.Zero,
		TotalDebt:              decimal.Zero,
		TokensInStabilityPool:  decimal.Zero,
		CollSurplusPoolBalance: decimal.Zero,
		TotalStaked:            decimal.Zero,
	}

	if err := s.ind.systemStates.Create(s.ctx, s.tx, state); err != nil {
		return nil, err
	}

	s.global.CurrentSystemStateID = state.ID
	s.systemState = state
	return state, nil
}

// bumpSystemState re-persists the state under a fresh sequence number as a
// new row and repoints the global at it. Prior snapshots are never touched.
func (s *session) bumpSystemState(state *core.SystemState) error {
	seq := s.global.NextSystemStateSequence()
	state.ID = sequenceID(seq)
	state.SequenceNumber = seq

	if err := s.ind.systemStates.Create(s.ctx, s.tx, state); err != nil {
		return err
	}

	s.global.CurrentSystemStateID = state.ID
	return nil
}

// offsetWithStabilityPool cancels as much of the liquidated debt as the pool
// holds. Full offset when the pool covers the debt; otherwise the pool is
// drained and the collateral shrinks pro-rata; an empty pool leaves the
// totals alone, the residual is redistributed across the remaining troves.
func offsetWithStabilityPool(state *core.SystemState, collateral, debt decimal.Decimal) {
	switch {
	case debt.LessThanOrEqual(state.TokensInStabilityPool):
		state.TotalCollateral = state.TotalCollateral.Sub(collateral)
		state.TotalDebt = state.TotalDebt.Sub(debt)
		state.TokensInStabilityPool = state.TokensInStabilityPool.Sub(debt)
	case state.TokensInStabilityPool.IsPositive():
		state.TotalCollateral = state.TotalCollateral.
			Sub(collateral.Mul(state.TokensInStabilityPool).DivRound(debt, number.Scale))
		state.TotalDebt = state.TotalDebt.Sub(state.TokensInStabilityPool)
		state.TokensInStabilityPool = decimal.Zero
	}
}

func (s *session) applyTroveChangeToSystemState(change *core.TroveChange) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	op := change.Operation
	switch {
	case op.IsBorrowerOperation() || op.IsRedemption():
		state.TotalCollateral = state.TotalCollateral.Add(change.CollateralChange)
		state.TotalDebt = state.TotalDebt.Add(change.DebtChange)
	case op.IsLiquidation():
		if !op.IsRecoveryModeLiquidation() || ratioAboveOne(change.CollateralRatioBefore) {
			offsetWithStabilityPool(state, change.CollateralChange.Neg(), change.DebtChange.Neg())
		}
	}

	state.TotalCollateralRatio = number.CollateralRatio(state.TotalCollateral, state.TotalDebt, state.Price)
	return s.bumpSystemState(state)
}

// ratioAboveOne treats an invalid ratio (no debt) as unbounded.
func ratioAboveOne(ratio decimal.NullDecimal) bool {
	return !ratio.Valid || ratio.Decimal.GreaterThan(decimal.New(1, 0))
}

func (s *session) applyStabilityDepositChangeToSystemState(change *core.StabilityDepositChange) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	if change.Operation.MovesPoolTokens() {
		state.TokensInStabilityPool = state.TokensInStabilityPool.Add(change.DepositedAmountChange)
	}

	return s.bumpSystemState(state)
}

func (s *session) applyStakeChangeToSystemState(change *core.StakeChange) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	state.TotalStaked = state.TotalStaked.Add(change.StakedAmountChange)
	return s.bumpSystemState(state)
}

func (s *session) applyCollSurplusChangeToSystemState(change *core.CollSurplusChange) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	state.CollSurplusPoolBalance = state.CollSurplusPoolBalance.Add(change.CollSurplusChange)
	return s.bumpSystemState(state)
}
