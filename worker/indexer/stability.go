package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

// currentStabilityDeposit resolves the owner's open deposit, creating a fresh
// incarnation when none is open.
func (s *session) currentStabilityDeposit(user *core.User) (*core.StabilityDeposit, error) {
	if deposit, ok := s.deposits[user.ID]; ok && deposit != nil {
		return deposit, nil
	}

	if user.CurrentStabilityDepositID != "" {
		deposit, err := s.ind.deposits.Find(s.ctx, user.CurrentStabilityDepositID)
		if err != nil {
			return nil, err
		}

		s.deposits[user.ID] = deposit
		return deposit, nil
	}

	deposit := core.NewStabilityDeposit(user.NextStabilityDepositID(), user.ID)
	if err := s.ind.deposits.Create(s.ctx, s.tx, deposit); err != nil {
		return nil, err
	}

	user.CurrentStabilityDepositID = deposit.ID
	if err := s.saveUser(user); err != nil {
		return nil, err
	}

	s.deposits[user.ID] = deposit
	return deposit, nil
}

func (s *session) handleUserDepositChanged() error {
	depositor, err := s.event.ParamAddress("depositor")
	if err != nil {
		return err
	}

	rawDeposit, err := s.event.ParamRaw("newDeposit")
	if err != nil {
		return err
	}

	user, err := s.user(depositor)
	if err != nil {
		return err
	}

	deposit, err := s.currentStabilityDeposit(user)
	if err != nil {
		return err
	}

	newAmount := number.FromRaw(rawDeposit)
	if newAmount.Equal(deposit.DepositedAmount) {
		// gain-only withdrawal, recorded by the gain event instead
		return nil
	}

	operation := core.StabilityDepositOperationWithdrawTokens
	if newAmount.GreaterThan(deposit.DepositedAmount) {
		operation = core.StabilityDepositOperationDepositTokens
	}

	return s.updateStabilityDeposit(user, deposit, operation, newAmount, decimal.NullDecimal{})
}

func (s *session) handleCollateralGainWithdrawn() error {
	depositor, err := s.event.ParamAddress("depositor")
	if err != nil {
		return err
	}

	rawGain, err := s.event.ParamRaw("collateralGain")
	if err != nil {
		return err
	}

	rawLoss, err := s.event.ParamRaw("tokenLoss")
	if err != nil {
		return err
	}

	if rawGain.IsZero() && rawLoss.IsZero() {
		return nil
	}

	user, err := s.user(depositor)
	if err != nil {
		return err
	}

	deposit, err := s.currentStabilityDeposit(user)
	if err != nil {
		return err
	}

	newAmount := deposit.DepositedAmount.Sub(number.FromRaw(rawLoss))
	gain := decimal.NullDecimal{Decimal: number.FromRaw(rawGain), Valid: true}

	return s.updateStabilityDeposit(
		user, deposit,
		core.StabilityDepositOperationWithdrawCollateralGain,
		newAmount, gain,
	)
}

func (s *session) updateStabilityDeposit(
	user *core.User,
	deposit *core.StabilityDeposit,
	operation core.StabilityDepositOperation,
	newAmount decimal.Decimal,
	collateralGain decimal.NullDecimal,
) error {
	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.StabilityDepositChange{
		StabilityDepositID: deposit.ID,
		Operation:          operation,
		CollateralGain:     collateralGain,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	change.DepositedAmountBefore = deposit.DepositedAmount
	deposit.DepositedAmount = newAmount
	change.DepositedAmountAfter = newAmount
	change.DepositedAmountChange = change.DepositedAmountAfter.Sub(change.DepositedAmountBefore)

	if newAmount.IsZero() {
		user.CurrentStabilityDepositID = ""
		if err := s.saveUser(user); err != nil {
			return err
		}

		s.deposits[user.ID] = nil
	}

	if err := s.applyStabilityDepositChangeToSystemState(change); err != nil {
		return err
	}

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	if err := s.ind.depositChanges.Create(s.ctx, s.tx, change); err != nil {
		return err
	}

	return s.ind.deposits.Update(s.ctx, s.tx, deposit)
}
