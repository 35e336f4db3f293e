package indexer

import (
	"fmt"

	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

// currentLiquidation returns the liquidation in progress, starting a fresh
// zeroed one tagged with the transaction sender when none is.
func (s *session) currentLiquidation() (*core.Liquidation, error) {
	if s.liquidation != nil {
		return s.liquidation, nil
	}

	if s.global.CurrentLiquidationID != "" {
		liquidation, err := s.ind.liquidations.Find(s.ctx, s.global.CurrentLiquidationID)
		if err != nil {
			return nil, err
		}

		s.liquidation = liquidation
		return liquidation, nil
	}

	transaction, err := s.getTransaction()
	if err != nil {
		return nil, err
	}

	liquidator, err := s.user(s.event.TxSender)
	if err != nil {
		return nil, err
	}

	seq := s.global.NextLiquidationSequence()
	liquidation := &core.Liquidation{
		ID:                   sequenceID(seq),
		SequenceNumber:       seq,
		TransactionID:        transaction.ID,
		LiquidatorID:         liquidator.ID,
		LiquidatedCollateral: decimal.Zero,
		LiquidatedDebt:       decimal.Zero,
		CollGasCompensation:  decimal.Zero,
		TokenGasCompensation: decimal.Zero,
	}

	if err := s.ind.liquidations.Create(s.ctx, s.tx, liquidation); err != nil {
		return nil, err
	}

	s.global.CurrentLiquidationID = liquidation.ID
	s.liquidation = liquidation
	return liquidation, nil
}

// handleLiquidation fills the totals into the liquidation in progress and
// clears the pointer. Arriving with none outstanding means an event was
// dropped or reordered upstream.
func (s *session) handleLiquidation() error {
	if s.global.CurrentLiquidationID == "" {
		return fmt.Errorf("event %d: %w", s.event.ID, core.ErrNoCurrentLiquidation)
	}

	rawColl, err := s.event.ParamRaw("liquidatedColl")
	if err != nil {
		return err
	}

	rawDebt, err := s.event.ParamRaw("liquidatedDebt")
	if err != nil {
		return err
	}

	rawCollGas, err := s.event.ParamRaw("collGasCompensation")
	if err != nil {
		return err
	}

	rawTokenGas, err := s.event.ParamRaw("tokenGasCompensation")
	if err != nil {
		return err
	}

	liquidation, err := s.currentLiquidation()
	if err != nil {
		return err
	}

	liquidation.LiquidatedCollateral = number.FromRaw(rawColl)
	liquidation.LiquidatedDebt = number.FromRaw(rawDebt)
	liquidation.CollGasCompensation = number.FromRaw(rawCollGas)
	liquidation.TokenGasCompensation = number.FromRaw(rawTokenGas)

	if err := s.ind.liquidations.Update(s.ctx, s.tx, liquidation); err != nil {
		return err
	}

	s.global.CurrentLiquidationID = ""
	s.liquidation = nil
	return nil
}

// handleLTermsUpdated tracks the running redistribution totals that trove
// reward snapshots are stamped from.
func (s *session) handleLTermsUpdated() error {
	rawColl, err := s.event.ParamRaw("collateral")
	if err != nil {
		return err
	}

	rawDebt, err := s.event.ParamRaw("debt")
	if err != nil {
		return err
	}

	s.global.RawTotalRedistributedCollateral = rawColl
	s.global.RawTotalRedistributedDebt = rawDebt
	return nil
}
