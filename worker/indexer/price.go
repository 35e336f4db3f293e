package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"
)

// handlePriceUpdated records a price change and bumps the system state.
// An unchanged price is a no-op, no change row is written.
func (s *session) handlePriceUpdated() error {
	rawPrice, err := s.event.ParamRaw("newPrice")
	if err != nil {
		return err
	}

	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	newPrice := number.FromRaw(rawPrice)
	if newPrice.Equal(state.Price) {
		return nil
	}

	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.PriceChange{
		PriceBefore: state.Price,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	state.Price = newPrice
	if err := s.bumpSystemState(state); err != nil {
		return err
	}

	change.PriceAfter = newPrice
	change.PriceChange = change.PriceAfter.Sub(change.PriceBefore)

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	return s.ind.priceChanges.Create(s.ctx, s.tx, change)
}
