package vestbook

import (
	sdkerrors "cosmossdk.io/errors"
)

// ModuleName is the codespace under which all ledger errors are registered.
const ModuleName = "vestbook"

// Ledger sentinel errors.
//
// Validation and claim errors are rejected before any mutation. Sequencing
// errors signal caller misuse of the ordering contracts. ErrNegativeBalance
// is fatal: it indicates a bug in the calling accounting logic, not a
// recoverable user error.
var (
	ErrZeroAddress       = sdkerrors.Register(ModuleName, 2, "empty account identifier")
	ErrZeroAmount        = sdkerrors.Register(ModuleName, 3, "amount is not positive")
	ErrZeroDuration      = sdkerrors.Register(ModuleName, 4, "duration cannot be zero")
	ErrDuplicateSchedule = sdkerrors.Register(ModuleName, 5, "schedule already exists")

	ErrNoTokensDue = sdkerrors.Register(ModuleName, 6, "no tokens due")
	ErrZeroClaim   = sdkerrors.Register(ModuleName, 7, "claim amount is not positive")
	ErrOverClaim   = sdkerrors.Register(ModuleName, 8, "claim exceeds releasable amount")

	ErrOutOfOrderWrite = sdkerrors.Register(ModuleName, 9, "marker is older than the last write")
	ErrFutureLookup    = sdkerrors.Register(ModuleName, 10, "timepoint is not settled yet")

	ErrNegativeBalance = sdkerrors.Register(ModuleName, 11, "checkpoint value would become negative")

	ErrTransferRejected      = sdkerrors.Register(ModuleName, 12, "transfer rejected")
	ErrInsufficientBalance   = sdkerrors.Register(ModuleName, 13, "insufficient balance")
	ErrInsufficientAllowance = sdkerrors.Register(ModuleName, 14, "insufficient allowance")
)
