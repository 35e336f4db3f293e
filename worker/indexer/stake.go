package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

// userStake resolves the owner's stake row, creating it on first use. A
// removed stake keeps its row; re-staking re-activates it.
func (s *session) userStake(user *core.User) (*core.Stake, bool, error) {
	if stake, ok := s.stakes[user.ID]; ok {
		return stake, false, nil
	}

	if user.StakeID != "" {
		stake, err := s.ind.stakes.Find(s.ctx, user.StakeID)
		if err != nil {
			return nil, false, err
		}

		s.stakes[user.ID] = stake
		return stake, false, nil
	}

	stake := &core.Stake{
		ID:             user.ID,
		OwnerID:        user.ID,
		SequenceNumber: s.global.NextStakeSequence(),
		Amount:         decimal.Zero,
	}

	if err := s.ind.stakes.Create(s.ctx, s.tx, stake); err != nil {
		return nil, false, err
	}

	user.StakeID = stake.ID
	if err := s.saveUser(user); err != nil {
		return nil, false, err
	}

	s.stakes[user.ID] = stake
	return stake, true, nil
}

func (s *session) handleStakeChanged() error {
	staker, err := s.event.ParamAddress("staker")
	if err != nil {
		return err
	}

	rawStake, err := s.event.ParamRaw("newStake")
	if err != nil {
		return err
	}

	user, err := s.user(staker)
	if err != nil {
		return err
	}

	stake, first, err := s.userStake(user)
	if err != nil {
		return err
	}

	nextAmount := number.FromRaw(rawStake)
	operation := core.StakeOperationFor(stake.Amount, nextAmount)

	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.StakeChange{
		StakeID:        stake.ID,
		Operation:      operation,
		IssuanceGain:   decimal.Zero,
		RedemptionGain: decimal.Zero,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	change.StakedAmountBefore = stake.Amount
	change.StakedAmountAfter = nextAmount
	change.StakedAmountChange = nextAmount.Sub(stake.Amount)
	stake.Amount = nextAmount

	switch operation {
	case core.StakeOperationStakeCreated:
		if first {
			s.global.TotalNumberOfStakes++
		}
		s.global.NumberOfActiveStakes++
	case core.StakeOperationStakeRemoved:
		s.global.NumberOfActiveStakes--
	}

	if err := s.applyStakeChangeToSystemState(change); err != nil {
		return err
	}

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	if err := s.ind.stakeChanges.Create(s.ctx, s.tx, change); err != nil {
		return err
	}

	return s.ind.stakes.Update(s.ctx, s.tx, stake)
}

func (s *session) handleStakingGainsWithdrawn() error {
	staker, err := s.event.ParamAddress("staker")
	if err != nil {
		return err
	}

	rawTokenGain, err := s.event.ParamRaw("tokenGain")
	if err != nil {
		return err
	}

	rawCollGain, err := s.event.ParamRaw("collateralGain")
	if err != nil {
		return err
	}

	if rawTokenGain.IsZero() && rawCollGain.IsZero() {
		return nil
	}

	user, err := s.user(staker)
	if err != nil {
		return err
	}

	stake, _, err := s.userStake(user)
	if err != nil {
		return err
	}

	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.StakeChange{
		StakeID:        stake.ID,
		Operation:      core.StakeOperationGainsWithdrawn,
		IssuanceGain:   number.FromRaw(rawTokenGain),
		RedemptionGain: number.FromRaw(rawCollGain),
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	change.StakedAmountBefore = stake.Amount
	change.StakedAmountAfter = stake.Amount
	change.StakedAmountChange = decimal.Zero

	if err := s.applyStakeChangeToSystemState(change); err != nil {
		return err
	}

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	if err := s.ind.stakeChanges.Create(s.ctx, s.tx, change); err != nil {
		return err
	}

	return s.ind.stakes.Update(s.ctx, s.tx, stake)
}
