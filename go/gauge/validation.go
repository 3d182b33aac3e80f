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

import (
	"github.com/holiman/uint256"
)

// Intrinsic gas costs charged before any byte-code runs.
const (
	TxGas                 = 21_000
	TxGasContractCreation = 53_000
	TxDataNonZeroGas      = 16
	TxDataZeroGas         = 4
)

// FeeCalculator supplies the minimal required gas price of the chain,
// together with the weight cost of obtaining it.
type FeeCalculator interface {
	MinGasPrice() (Value, Weight)
}

// FixedFee is a FeeCalculator returning a constant minimum. The zero value
// imposes no minimum.
type FixedFee struct {
	Price Value
	Cost  Weight
}

func (f FixedFee) MinGasPrice() (Value, Weight) {
	return f.Price, f.Cost
}

// TransactionInput is the caller-supplied portion of a transaction checked
// before execution.
type TransactionInput struct {
	// Nonce declared by the transaction.
	Nonce uint64
	// GasLimit the sender is willing to pay for.
	GasLimit Gas
	// Value transferred with the transaction.
	Value Value
	// Input data, or initialization code for a creation.
	Input Data
	// Recipient of the transaction, nil for a contract creation.
	Recipient *Address
}

// CheckConfig bundles the chain rules consulted during pre-execution
// validation.
type CheckConfig struct {
	// BlockGasLimit caps the gas limit of a single transaction.
	BlockGasLimit Gas
	// BaseFee is the minimal gas price imposed by the fee market, nil if
	// the chain has no base fee.
	BaseFee *Value
	// Fee supplies the chain's minimum gas price, nil if there is none.
	Fee FeeCalculator
}

// CheckTransaction validates a transaction against the current state before
// execution is ever attempted. All failures are returned as values from the
// fixed taxonomy in errors.go; a transaction rejected here must not reach
// the execution engine.
func CheckTransaction(vicinity Vicinity, config CheckConfig, tx TransactionInput, state WorldState) error {
	if tx.GasLimit > config.BlockGasLimit {
		return ErrGasLimitTooHigh
	}
	if tx.GasLimit < IntrinsicGas(tx) {
		return ErrGasLimitTooLow
	}
	if config.Fee != nil {
		minPrice, _ := config.Fee.MinGasPrice()
		if vicinity.GasPrice.Cmp(minPrice) < 0 {
			return ErrGasPriceTooLow
		}
	}
	if config.BaseFee != nil && vicinity.GasPrice.Cmp(*config.BaseFee) < 0 {
		return ErrGasPriceTooLow
	}
	if len(state.GetCode(vicinity.Origin)) > 0 {
		return ErrSenderNotEOA
	}
	stateNonce := state.GetNonce(vicinity.Origin)
	if tx.Nonce < stateNonce {
		return ErrNonceTooLow
	}
	if tx.Nonce > stateNonce {
		return ErrNonceTooHigh
	}
	return checkFunds(vicinity, tx, state)
}

// checkFunds verifies that the sender can cover gas limit * gas price plus
// the transferred value.
func checkFunds(vicinity Vicinity, tx TransactionInput, state WorldState) error {
	fee, overflow := new(uint256.Int).MulOverflow(
		vicinity.GasPrice.ToUint256(),
		new(uint256.Int).SetUint64(uint64(tx.GasLimit)),
	)
	if overflow {
		return ErrInsufficientFunds
	}
	total, overflow := new(uint256.Int).AddOverflow(fee, tx.Value.ToUint256())
	if overflow {
		return ErrInsufficientFunds
	}
	balance := state.GetBalance(vicinity.Origin).ToUint256()
	if balance.Cmp(total) < 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// IntrinsicGas computes the gas charged for a transaction before any of its
// byte-code runs: a flat cost depending on the transaction kind plus a
// per-byte cost of the input data.
func IntrinsicGas(tx TransactionInput) Gas {
	var gas Gas
	if tx.Recipient == nil {
		gas = TxGasContractCreation
	} else {
		gas = TxGas
	}

	if len(tx.Input) > 0 {
		nonZeroBytes := Gas(0)
		for _, inputByte := range tx.Input {
			if inputByte != 0 {
				nonZeroBytes++
			}
		}
		zeroBytes := Gas(len(tx.Input)) - nonZeroBytes
		gas += zeroBytes * TxDataZeroGas
		gas += nonZeroBytes * TxDataNonZeroGas
	}

	return gas
}
