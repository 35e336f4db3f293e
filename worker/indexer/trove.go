package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

func (s *session) handleBorrowerTroveUpdated() error {
	borrower, err := s.event.ParamAddress("borrower")
	if err != nil {
		return err
	}

	rawColl, err := s.event.ParamRaw("coll")
	if err != nil {
		return err
	}

	rawDebt, err := s.event.ParamRaw("debt")
	if err != nil {
		return err
	}

	rawStake, err := s.event.ParamRaw("stake")
	if err != nil {
		return err
	}

	code, err := s.event.ParamInt("operation")
	if err != nil {
		return err
	}

	operation, err := core.TroveOperationFromBorrowerOperation(code)
	if err != nil {
		return err
	}

	return s.updateTrove(
		operation, borrower, rawColl, rawDebt, rawStake,
		s.global.RawTotalRedistributedCollateral,
		s.global.RawTotalRedistributedDebt,
	)
}

func (s *session) handleTroveManagerTroveUpdated() error {
	borrower, err := s.event.ParamAddress("borrower")
	if err != nil {
		return err
	}

	rawColl, err := s.event.ParamRaw("coll")
	if err != nil {
		return err
	}

	rawDebt, err := s.event.ParamRaw("debt")
	if err != nil {
		return err
	}

	rawStake, err := s.event.ParamRaw("stake")
	if err != nil {
		return err
	}

	code, err := s.event.ParamInt("operation")
	if err != nil {
		return err
	}

	operation, err := core.TroveOperationFromTroveManagerOperation(code)
	if err != nil {
		return err
	}

	return s.updateTrove(
		operation, borrower, rawColl, rawDebt, rawStake,
		s.global.RawTotalRedistributedCollateral,
		s.global.RawTotalRedistributedDebt,
	)
}

// handleTroveLiquidated records the trove's final rewarded position, then
// zeroes it out under the liquidation operation. The aggregate Liquidation
// event of the same transaction fills the totals in afterwards.
func (s *session) handleTroveLiquidated() error {
	borrower, err := s.event.ParamAddress("borrower")
	if err != nil {
		return err
	}

	rawColl, err := s.event.ParamRaw("coll")
	if err != nil {
		return err
	}

	rawDebt, err := s.event.ParamRaw("debt")
	if err != nil {
		return err
	}

	code, err := s.event.ParamInt("operation")
	if err != nil {
		return err
	}

	operation, err := core.TroveOperationFromTroveManagerOperation(code)
	if err != nil {
		return err
	}

	if err := s.updateTrove(
		core.TroveOperationAccrueRewards, borrower,
		rawColl, rawDebt, decimal.Zero, decimal.Zero, decimal.Zero,
	); err != nil {
		return err
	}

	return s.updateTrove(
		operation, borrower,
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
	)
}

// currentTrove resolves the owner's open trove, creating a fresh incarnation
// when none is open.
func (s *session) currentTrove(user *core.User) (*core.Trove, error) {
	if trove, ok := s.troves[user.ID]; ok && trove != nil {
		return trove, nil
	}

	if user.CurrentTroveID != "" {
		trove, err := s.ind.troves.Find(s.ctx, user.CurrentTroveID)
		if err != nil {
			return nil, err
		}

		s.troves[user.ID] = trove
		return trove, nil
	}

	trove := core.NewTrove(user.NextTroveID(), user.ID)
	if err := s.ind.troves.Create(s.ctx, s.tx, trove); err != nil {
		return nil, err
	}

	user.CurrentTroveID = trove.ID
	if err := s.saveUser(user); err != nil {
		return nil, err
	}

	s.global.IncreaseNumberOfOpenTroves()
	s.troves[user.ID] = trove
	return trove, nil
}

func (s *session) updateTrove(
	operation core.TroveOperation,
	owner string,
	rawColl, rawDebt, rawStake, snapshotColl, snapshotDebt decimal.Decimal,
) error {
	user, err := s.user(owner)
	if err != nil {
		return err
	}

	trove, err := s.currentTrove(user)
	if err != nil {
		return err
	}

	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.TroveChange{
		TroveID:   trove.ID,
		Operation: operation,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	state, err := s.currentSystemState()
	if err != nil {
		return err
	}
	price := state.Price

	change.CollateralBefore = trove.Collateral
	change.DebtBefore = trove.Debt
	change.CollateralRatioBefore = number.CollateralRatio(trove.Collateral, trove.Debt, price)

	// the event carries authoritative on-chain values; mirror them, never
	// recompute them
	trove.RawCollateral = rawColl
	trove.RawDebt = rawDebt
	trove.RawStake = rawStake
	trove.RawCollateralPerDebt = number.CollateralPerDebt(rawColl, rawDebt)
	trove.RawSnapshotOfTotalRedistributedCollateral = snapshotColl
	trove.RawSnapshotOfTotalRedistributedDebt = snapshotDebt
	trove.Collateral = number.FromRaw(rawColl)
	trove.Debt = number.FromRaw(rawDebt)

	change.CollateralAfter = trove.Collateral
	change.DebtAfter = trove.Debt
	change.CollateralChange = change.CollateralAfter.Sub(change.CollateralBefore)
	change.DebtChange = change.DebtAfter.Sub(change.DebtBefore)
	change.CollateralRatioAfter = number.CollateralRatio(trove.Collateral, trove.Debt, price)

	switch {
	case operation.IsLiquidation():
		liquidation, err := s.currentLiquidation()
		if err != nil {
			return err
		}
		change.LiquidationID = liquidation.ID
	case operation.IsRedemption():
		redemption, err := s.currentRedemption()
		if err != nil {
			return err
		}
		change.RedemptionID = redemption.ID
	}

	if trove.Collateral.IsZero() && operation != core.TroveOperationOpenTrove {
		switch {
		case operation.IsLiquidation():
			trove.Status = core.TroveStatusLiquidated
		case operation.IsRedemption():
			trove.Status = core.TroveStatusRedeemed
		default:
			trove.Status = core.TroveStatusClosedByOwner
		}

		user.CurrentTroveID = ""
		if err := s.saveUser(user); err != nil {
			return err
		}

		s.global.CountClosedTrove(operation)
		s.troves[user.ID] = nil
	}

	if err := s.applyTroveChangeToSystemState(change); err != nil {
		return err
	}

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	if err := s.ind.troveChanges.Create(s.ctx, s.tx, change); err != nil {
		return err
	}

	return s.ind.troves.Update(s.ctx, s.tx, trove)
}
