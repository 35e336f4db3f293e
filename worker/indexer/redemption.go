package indexer

import (
	"fmt"

	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

// currentRedemption returns the redemption in progress, starting a fresh
// zeroed one tagged with the transaction sender when none is.
func (s *session) currentRedemption() (*core.Redemption, error) {
	if s.redemption != nil {
		return s.redemption, nil
	}

	if s.global.CurrentRedemptionID != "" {
		redemption, err := s.ind.redemptions.Find(s.ctx, s.global.CurrentRedemptionID)
		if err != nil {
			return nil, err
		}

		s.redemption = redemption
		return redemption, nil
	}

	transaction, err := s.getTransaction()
	if err != nil {
		return nil, err
	}

	redeemer, err := s.user(s.event.TxSender)
	if err != nil {
		return nil, err
	}

	seq := s.global.NextRedemptionSequence()
	redemption := &core.Redemption{
		ID:                      sequenceID(seq),
		SequenceNumber:          seq,
		TransactionID:           transaction.ID,
		RedeemerID:              redeemer.ID,
		TokensAttemptedToRedeem: decimal.Zero,
		TokensActuallyRedeemed:  decimal.Zero,
		CollateralRedeemed:      decimal.Zero,
		Fee:                     decimal.Zero,
	}

	if err := s.ind.redemptions.Create(s.ctx, s.tx, redemption); err != nil {
		return nil, err
	}

	s.global.CurrentRedemptionID = redemption.ID
	s.redemption = redemption
	return redemption, nil
}

// handleRedemption fills the totals into the redemption in progress and
// clears the pointer. The fee accumulates on the global.
func (s *session) handleRedemption() error {
	if s.global.CurrentRedemptionID == "" {
		return fmt.Errorf("event %d: %w", s.event.ID, core.ErrNoCurrentRedemption)
	}

	rawAttempted, err := s.event.ParamRaw("attemptedTokenAmount")
	if err != nil {
		return err
	}

	rawActual, err := s.event.ParamRaw("actualTokenAmount")
	if err != nil {
		return err
	}

	rawCollSent, err := s.event.ParamRaw("collateralSent")
	if err != nil {
		return err
	}

	rawFee, err := s.event.ParamRaw("collateralFee")
	if err != nil {
		return err
	}

	redemption, err := s.currentRedemption()
	if err != nil {
		return err
	}

	fee := number.FromRaw(rawFee)
	redemption.TokensAttemptedToRedeem = number.FromRaw(rawAttempted)
	redemption.TokensActuallyRedeemed = number.FromRaw(rawActual)
	redemption.CollateralRedeemed = number.FromRaw(rawCollSent)
	redemption.Fee = fee
	redemption.Partial = rawActual.LessThan(rawAttempted)

	if err := s.ind.redemptions.Update(s.ctx, s.tx, redemption); err != nil {
		return err
	}

	s.global.CurrentRedemptionID = ""
	s.global.TotalRedemptionFeesPaid = s.global.TotalRedemptionFeesPaid.Add(fee)
	s.redemption = nil
	return nil
}
