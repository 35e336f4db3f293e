package core

import "fmt"

// TroveOperation the closed set of operations a trove change can record
type TroveOperation string

const (
	TroveOperationOpenTrove               TroveOperation = "openTrove"
	TroveOperationCloseTrove              TroveOperation = "closeTrove"
	TroveOperationAdjustTrove             TroveOperation = "adjustTrove"
	TroveOperationAccrueRewards           TroveOperation = "accrueRewards"
	TroveOperationLiquidateInNormalMode   TroveOperation = "liquidateInNormalMode"
	TroveOperationLiquidateInRecoveryMode TroveOperation = "liquidateInRecoveryMode"
	TroveOperationRedeemCollateral        TroveOperation = "redeemCollateral"
)

// TroveOperationFromBorrowerOperation maps a BorrowerOperations operation
// code. Codes outside the set are a schema drift between the indexer and its
// source and must halt processing.
func TroveOperationFromBorrowerOperation(code int64) (TroveOperation, error) {
	switch code {
	case 0:
		return TroveOperationOpenTrove, nil
	case 1:
		return TroveOperationCloseTrove, nil
	case 2:
		return TroveOperationAdjustTrove, nil
	}

	return "", fmt.Errorf("borrower operation %d: %w", code, ErrUnknownOperation)
}

// TroveOperationFromTroveManagerOperation maps a TroveManager operation code.
func TroveOperationFromTroveManagerOperation(code int64) (TroveOperation, error) {
	switch code {
	case 0:
		return TroveOperationAccrueRewards, nil
	case 1:
		return TroveOperationLiquidateInNormalMode, nil
	case 2:
		return TroveOperationLiquidateInRecoveryMode, nil
	case 3:
		return TroveOperationRedeemCollateral, nil
	}

	return "", fmt.Errorf("trove manager operation %d: %w", code, ErrUnknownOperation)
}

// IsBorrowerOperation reports whether the borrower initiated the change.
func (op TroveOperation) IsBorrowerOperation() bool {
	switch op {
	case TroveOperationOpenTrove, TroveOperationCloseTrove, TroveOperationAdjustTrove:
		return true
	}

	return false
}

// IsLiquidation reports whether the change is part of a liquidation.
func (op TroveOperation) IsLiquidation() bool {
	switch op {
	case TroveOperationLiquidateInNormalMode, TroveOperationLiquidateInRecoveryMode:
		return true
	}

	return false
}

// IsRecoveryModeLiquidation reports whether the liquidation ran in recovery
// mode.
func (op TroveOperation) IsRecoveryModeLiquidation() bool {
	return op == TroveOperationLiquidateInRecoveryMode
}

// IsRedemption reports whether the change is part of a redemption.
func (op TroveOperation) IsRedemption() bool {
	return op == TroveOperationRedeemCollateral
}

// StabilityDepositOperation stability deposit change operations
type StabilityDepositOperation string

const (
	StabilityDepositOperationDepositTokens          StabilityDepositOperation = "depositTokens"
	StabilityDepositOperationWithdrawTokens         StabilityDepositOperation = "withdrawTokens"
	StabilityDepositOperationWithdrawCollateralGain StabilityDepositOperation = "withdrawCollateralGain"
)

// MovesPoolTokens reports whether the operation changes the pool's token
// balance. Collateral-gain-only withdrawals do not.
func (op StabilityDepositOperation) MovesPoolTokens() bool {
	return op == StabilityDepositOperationDepositTokens || op == StabilityDepositOperationWithdrawTokens
}

// StakeOperation stake change operations
type StakeOperation string

const (
	StakeOperationStakeCreated   StakeOperation = "stakeCreated"
	StakeOperationStakeIncreased StakeOperation = "stakeIncreased"
	StakeOperationStakeDecreased StakeOperation = "stakeDecreased"
	StakeOperationStakeRemoved   StakeOperation = "stakeRemoved"
	StakeOperationGainsWithdrawn StakeOperation = "gainsWithdrawn"
)

// TokenOperation token supply change operations
type TokenOperation string

const (
	TokenOperationMint TokenOperation = "mint"
	TokenOperationBurn TokenOperation = "burn"
)
