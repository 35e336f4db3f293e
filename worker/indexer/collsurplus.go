package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"
)

// handleCollBalanceUpdated tracks the claimable collateral surplus left to a
// former trove owner after a recovery-mode liquidation.
func (s *session) handleCollBalanceUpdated() error {
	account, err := s.event.ParamAddress("account")
	if err != nil {
		return err
	}

	rawBalance, err := s.event.ParamRaw("newBalance")
	if err != nil {
		return err
	}

	user, err := s.user(account)
	if err != nil {
		return err
	}

	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.CollSurplusChange{
		OwnerID:           user.ID,
		CollSurplusBefore: user.CollSurplus,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	user.CollSurplus = number.FromRaw(rawBalance)
	change.CollSurplusAfter = user.CollSurplus
	change.CollSurplusChange = change.CollSurplusAfter.Sub(change.CollSurplusBefore)

	if err := s.applyCollSurplusChangeToSystemState(change); err != nil {
		return err
	}

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	if err := s.ind.collSurplusChanges.Create(s.ctx, s.tx, change); err != nil {
		return err
	}

	return s.saveUser(user)
}
