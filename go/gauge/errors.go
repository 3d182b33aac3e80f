// Copyright (c) 2024 Sonata Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gauge

// ConstError is an error type for constant error messages. It allows errors
// to be declared as constants, which makes them comparable with errors.Is.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// Meter configuration and consumption errors. Configuration errors are only
// produced at meter construction time; exhaustion errors are only produced
// by consume operations and abort the triggering execution.
const (
	// ErrInvalidWeightLimit is returned when a weight limit is supplied in
	// which no dimension is strictly positive.
	ErrInvalidWeightLimit = ConstError("must provide a valid weight limit or none")

	// ErrRefTimeExhausted is returned when consuming ref-time would exceed
	// the configured limit or overflow the usage counter.
	ErrRefTimeExhausted = ConstError("out of ref-time weight")

	// ErrProofSizeExhausted is returned when consuming proof-size would
	// exceed the configured limit or overflow the usage counter.
	ErrProofSizeExhausted = ConstError("out of proof-size weight")
)

// Precompile execution errors.
const (
	ErrOutOfGas          = ConstError("out of gas")
	ErrExecutionReverted = ConstError("execution reverted")
)

// Pre-execution transaction validity errors. These are produced by
// CheckTransaction before any code is run; an execution must never be
// attempted for a transaction rejected here.
const (
	ErrGasLimitTooLow    = ConstError("intrinsic gas exceeds gas limit")
	ErrGasLimitTooHigh   = ConstError("gas limit exceeds block gas limit")
	ErrGasPriceTooLow    = ConstError("gas price below minimum")
	ErrNonceTooLow       = ConstError("nonce too low")
	ErrNonceTooHigh      = ConstError("nonce too high")
	ErrInsufficientFunds = ConstError("insufficient funds for gas * price + value")
	ErrSenderNotEOA      = ConstError("sender is not an externally owned account")
)
