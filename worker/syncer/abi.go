package syncer

import (
	"strings"

	"trovescan/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Events-only ABI fragments for the watched contract roles. Parameter names
// matter: stripped of their leading underscore they become the event params
// the indexer reads.

const troveManagerABI = `[
	{"type":"event","name":"TroveUpdated","inputs":[
		{"name":"_borrower","type":"address","indexed":true},
		{"name":"_debt","type":"uint256","indexed":false},
		{"name":"_coll","type":"uint256","indexed":false},
		{"name":"_stake","type":"uint256","indexed":false},
		{"name":"_operation","type":"uint8","indexed":false}]},
	{"type":"event","name":"TroveLiquidated","inputs":[
		{"name":"_borrower","type":"address","indexed":true},
		{"name":"_debt","type":"uint256","indexed":false},
		{"name":"_coll","type":"uint256","indexed":false},
		{"name":"_operation","type":"uint8","indexed":false}]},
	{"type":"event","name":"Liquidation","inputs":[
		{"name":"_liquidatedDebt","type":"uint256","indexed":false},
		{"name":"_liquidatedColl","type":"uint256","indexed":false},
		{"name":"_collGasCompensation","type":"uint256","indexed":false},
		{"name":"_tokenGasCompensation","type":"uint256","indexed":false}]},
	{"type":"event","name":"Redemption","inputs":[
		{"name":"_attemptedTokenAmount","type":"uint256","indexed":false},
		{"name":"_actualTokenAmount","type":"uint256","indexed":false},
		{"name":"_collateralSent","type":"uint256","indexed":false},
		{"name":"_collateralFee","type":"uint256","indexed":false}]},
	{"type":"event","name":"LTermsUpdated","inputs":[
		{"name":"_collateral","type":"uint256","indexed":false},
		{"name":"_debt","type":"uint256","indexed":false}]}
]`

const borrowerOperationsABI = `[
	{"type":"event","name":"TroveUpdated","inputs":[
		{"name":"_borrower","type":"address","indexed":true},
		{"name":"_debt","type":"uint256","indexed":false},
		{"name":"_coll","type":"uint256","indexed":false},
		{"name":"_stake","type":"uint256","indexed":false},
		{"name":"_operation","type":"uint8","indexed":false}]}
]`

const stabilityPoolABI = `[
	{"type":"event","name":"UserDepositChanged","inputs":[
		{"name":"_depositor","type":"address","indexed":true},
		{"name":"_newDeposit","type":"uint256","indexed":false}]},
	{"type":"event","name":"ETHGainWithdrawn","inputs":[
		{"name":"_depositor","type":"address","indexed":true},
		{"name":"_collateralGain","type":"uint256","indexed":false},
		{"name":"_tokenLoss","type":"uint256","indexed":false}]}
]`

const stakingABI = `[
	{"type":"event","name":"StakeChanged","inputs":[
		{"name":"_staker","type":"address","indexed":true},
		{"name":"_newStake","type":"uint256","indexed":false}]},
	{"type":"event","name":"StakingGainsWithdrawn","inputs":[
		{"name":"_staker","type":"address","indexed":true},
		{"name":"_tokenGain","type":"uint256","indexed":false},
		{"name":"_collateralGain","type":"uint256","indexed":false}]}
]`

const priceFeedABI = `[
	{"type":"event","name":"PriceUpdated","inputs":[
		{"name":"_newPrice","type":"uint256","indexed":false}]}
]`

const collSurplusPoolABI = `[
	{"type":"event","name":"CollBalanceUpdated","inputs":[
		{"name":"_account","type":"address","indexed":true},
		{"name":"_newBalance","type":"uint256","indexed":false}]}
]`

const tokenABI = `[
	{"type":"event","name":"Transfer","inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]},
	{"type":"event","name":"Approval","inputs":[
		{"name":"owner","type":"address","indexed":true},
		{"name":"spender","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]}
]`

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}

	return parsed
}

var sourceABIs = map[string]abi.ABI{
	core.EventSourceTroveManager:       mustABI(troveManagerABI),
	core.EventSourceBorrowerOperations: mustABI(borrowerOperationsABI),
	core.EventSourceStabilityPool:      mustABI(stabilityPoolABI),
	core.EventSourceStaking:            mustABI(stakingABI),
	core.EventSourcePriceFeed:          mustABI(priceFeedABI),
	core.EventSourceCollSurplusPool:    mustABI(collSurplusPoolABI),
	core.EventSourceToken:              mustABI(tokenABI),
}
