package indexer

import (
	"trovescan/core"
	"trovescan/pkg/number"

	"github.com/shopspring/decimal"
)

// token resolves the mirrored token row of the emitting contract, creating
// it with its configured symbol and name on first sight.
func (s *session) token() (*core.Token, error) {
	token, err := s.ind.tokenStore.Find(s.ctx, s.event.Contract)
	if err != nil {
		return nil, err
	}

	if token.ID == "" {
		watch := s.ind.tokens[s.event.Contract]
		token = &core.Token{
			ID:          s.event.Contract,
			Symbol:      watch.Symbol,
			Name:        watch.Name,
			TotalSupply: decimal.Zero,
		}

		if err := s.ind.tokenStore.Create(s.ctx, s.tx, token); err != nil {
			return nil, err
		}
	}

	return token, nil
}

// handleTransfer mirrors one token transfer. The zero address marks mints
// and burns; those move total supply and write a TokenChange, ordinary legs
// move the two balance rows and leave supply alone.
func (s *session) handleTransfer() error {
	from, err := s.event.ParamAddress("from")
	if err != nil {
		return err
	}

	to, err := s.event.ParamAddress("to")
	if err != nil {
		return err
	}

	rawValue, err := s.event.ParamRaw("value")
	if err != nil {
		return err
	}

	token, err := s.token()
	if err != nil {
		return err
	}

	value := number.FromRaw(rawValue)
	supplyMoved := false

	if from == core.ZeroAddress {
		if err := s.changeTokenSupply(token, core.TokenOperationMint, value); err != nil {
			return err
		}
		supplyMoved = true
	} else {
		if err := s.adjustTokenBalance(token, from, value.Neg()); err != nil {
			return err
		}
	}

	if to == core.ZeroAddress {
		if err := s.changeTokenSupply(token, core.TokenOperationBurn, value.Neg()); err != nil {
			return err
		}
		supplyMoved = true
	} else {
		if err := s.adjustTokenBalance(token, to, value); err != nil {
			return err
		}
	}

	if supplyMoved {
		return s.ind.tokenStore.Update(s.ctx, s.tx, token)
	}

	return nil
}

func (s *session) changeTokenSupply(token *core.Token, operation core.TokenOperation, delta decimal.Decimal) error {
	seq, err := s.beginChange()
	if err != nil {
		return err
	}

	change := &core.TokenChange{
		TokenID:   token.ID,
		Operation: operation,
	}

	if err := s.initChange(&change.ChangeBase, seq); err != nil {
		return err
	}

	change.TotalSupplyBefore = token.TotalSupply
	token.TotalSupply = token.TotalSupply.Add(delta)
	change.TotalSupplyAfter = token.TotalSupply
	change.TotalSupplyChange = delta

	if err := s.finishChange(&change.ChangeBase); err != nil {
		return err
	}

	return s.ind.tokenChanges.Create(s.ctx, s.tx, change)
}

func (s *session) adjustTokenBalance(token *core.Token, owner string, delta decimal.Decimal) error {
	if _, err := s.user(owner); err != nil {
		return err
	}

	id := core.TokenBalanceID(token.ID, owner)
	balance, err := s.ind.tokenBalances.Find(s.ctx, id)
	if err != nil {
		return err
	}

	if balance.ID == "" {
		balance = &core.TokenBalance{
			ID:      id,
			TokenID: token.ID,
			OwnerID: owner,
			Balance: delta,
		}

		return s.ind.tokenBalances.Create(s.ctx, s.tx, balance)
	}

	balance.Balance = balance.Balance.Add(delta)
	return s.ind.tokenBalances.Update(s.ctx, s.tx, balance)
}

// handleApproval overwrites the (owner, spender) allowance in place.
func (s *session) handleApproval() error {
	owner, err := s.event.ParamAddress("owner")
	if err != nil {
		return err
	}

	spender, err := s.event.ParamAddress("spender")
	if err != nil {
		return err
	}

	rawValue, err := s.event.ParamRaw("value")
	if err != nil {
		return err
	}

	token, err := s.token()
	if err != nil {
		return err
	}

	if _, err := s.user(owner); err != nil {
		return err
	}

	value := number.FromRaw(rawValue)
	id := core.TokenAllowanceID(token.ID, owner, spender)

	allowance, err := s.ind.tokenAllowances.Find(s.ctx, id)
	if err != nil {
		return err
	}

	if allowance.ID == "" {
		allowance = &core.TokenAllowance{
			ID:        id,
			TokenID:   token.ID,
			OwnerID:   owner,
			SpenderID: spender,
			Value:     value,
		}

		return s.ind.tokenAllowances.Create(s.ctx, s.tx, allowance)
	}

	allowance.Value = value
	return s.ind.tokenAllowances.Update(s.ctx, s.tx, allowance)
}
