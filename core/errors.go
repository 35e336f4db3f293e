package core

import "errors"

var (
	// ErrUnknownOperation an operation code outside the closed set arrived.
	// Schema drift between indexer and event source; processing must halt.
	ErrUnknownOperation = errors.New("unknown operation code")
	// ErrUnknownEvent an event key with no registered handler
	ErrUnknownEvent = errors.New("unknown event")
	// ErrNoCurrentLiquidation a Liquidation totals event arrived with no
	// liquidation in progress
	ErrNoCurrentLiquidation = errors.New("no liquidation in progress")
	// ErrNoCurrentRedemption a Redemption totals event arrived with no
	// redemption in progress
	ErrNoCurrentRedemption = errors.New("no redemption in progress")
	// ErrMissingParam a required event parameter is absent
	ErrMissingParam = errors.New("missing event parameter")
)
