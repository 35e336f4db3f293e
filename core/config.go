package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config trovescan config
type Config struct {
	API   API       `json:"api"`
	DB    db.Config `json:"db"`
	Chain Chain     `json:"chain"`
}

// API api server config
type API struct {
	Port int `json:"port"`
}

// Chain chain access & contract wiring
type Chain struct {
	RPCHost       string  `json:"rpc_host"`
	StartBlock    uint64  `json:"start_block"`
	Confirmations uint64  `json:"confirmations"`
	BatchBlocks   uint64  `json:"batch_blocks"`
	Contracts     []Watch `json:"contracts"`
}

// Watch one watched contract
type Watch struct {
	// Source identifies the contract role: troveManager, borrowerOperations,
	// stabilityPool, staking, priceFeed, collSurplusPool or token
	Source  string `json:"source"`
	Address string `json:"address"`
	// Symbol/Name only meaningful for token contracts
	Symbol string `json:"symbol,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Tokens watched token contracts
func (c Chain) Tokens() []Watch {
	var tokens []Watch
	for _, w := range c.Contracts {
		if w.Source == EventSourceToken {
			tokens = append(tokens, w)
		}
	}

	return tokens
}
