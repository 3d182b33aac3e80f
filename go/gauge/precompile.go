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
	"bytes"
	"math"
	"math/bits"

	"github.com/ethereum/go-ethereum/common"
	geth "github.com/ethereum/go-ethereum/core/vm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PrecompileContext is the call context handed to a precompiled contract.
type PrecompileContext struct {
	// Address of the precompiled contract being executed.
	Address Address
	// Caller is the account that issued the call.
	Caller Address
	// Value transferred with the call.
	Value Value
	// Gas available to the call.
	Gas Gas
	// Input data of the call.
	Input Data
	// Static indicates a read-only call.
	Static bool
}

// PrecompileOutput is the successful result of a precompile execution.
type PrecompileOutput struct {
	Output  Data
	GasLeft Gas
}

// Precompile is the capability interface of a contract address handled by
// native logic instead of interpreted byte-code. An execution either
// produces an output, reverts (see RevertError), or fails with an error that
// consumes all gas of the call.
type Precompile interface {
	Execute(ctx PrecompileContext) (PrecompileOutput, error)
}

// RevertError signals that a precompile reverted. The output is returned to
// the caller and state changes of the call are rolled back, but remaining
// gas is not consumed.
type RevertError struct {
	Output Data
}

func (e *RevertError) Error() string {
	return string(ErrExecutionReverted)
}

func (e *RevertError) Unwrap() error {
	return ErrExecutionReverted
}

// LinearCostPrecompile wraps a cost-oblivious native function into a
// Precompile using the linear gas-metering convention for contracts that are
// not metered per opcode: base cost plus a per-32-byte-word cost of the
// input.
type LinearCostPrecompile struct {
	Base uint64
	Word uint64
	Run  func(input Data) (Data, error)
}

func (p LinearCostPrecompile) Execute(ctx PrecompileContext) (PrecompileOutput, error) {
	cost, err := linearCost(uint64(len(ctx.Input)), p.Base, p.Word)
	if err != nil {
		return PrecompileOutput{}, err
	}
	if cost > math.MaxInt64 || ctx.Gas < Gas(cost) {
		return PrecompileOutput{}, ErrOutOfGas
	}
	output, err := p.Run(ctx.Input)
	if err != nil {
		return PrecompileOutput{}, err
	}
	return PrecompileOutput{Output: output, GasLeft: ctx.Gas - Gas(cost)}, nil
}

func linearCost(length, base, word uint64) (uint64, error) {
	words := (length + 31) / 32
	hi, lo := bits.Mul64(words, word)
	if hi != 0 {
		return 0, ErrOutOfGas
	}
	cost := lo + base
	if cost < base {
		return 0, ErrOutOfGas
	}
	return cost, nil
}

// PrecompileSet is a set of precompiled contracts looked up by address.
type PrecompileSet struct {
	contracts map[Address]Precompile
}

// NewPrecompileSet creates a set from the given contracts. The map is copied
// and may be modified by the caller afterwards.
func NewPrecompileSet(contracts map[Address]Precompile) PrecompileSet {
	return PrecompileSet{contracts: maps.Clone(contracts)}
}

// Contains indicates whether the given address is handled by this set.
func (s PrecompileSet) Contains(address Address) bool {
	_, found := s.contracts[address]
	return found
}

// Addresses lists the addresses of the set in ascending order.
func (s PrecompileSet) Addresses() []Address {
	addresses := maps.Keys(s.contracts)
	slices.SortFunc(addresses, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addresses
}

// Execute runs the precompile registered for the context's address. The
// second result is false if the address is not part of the set, in which
// case the caller is expected to fall back to byte-code execution.
func (s PrecompileSet) Execute(ctx PrecompileContext) (PrecompileOutput, bool, error) {
	contract, found := s.contracts[ctx.Address]
	if !found {
		return PrecompileOutput{}, false, nil
	}
	output, err := contract.Execute(ctx)
	return output, true, err
}

// gethPrecompile adapts a go-ethereum precompiled contract to the
// Precompile capability interface.
type gethPrecompile struct {
	contract geth.PrecompiledContract
}

func (p gethPrecompile) Execute(ctx PrecompileContext) (PrecompileOutput, error) {
	cost := p.contract.RequiredGas(ctx.Input)
	if cost > math.MaxInt64 || ctx.Gas < Gas(cost) {
		return PrecompileOutput{}, ErrOutOfGas
	}
	// geth precompiles only return errors on invalid input; such a failure
	// consumes the gas of the call.
	output, err := p.contract.Run(ctx.Input)
	if err != nil {
		return PrecompileOutput{}, err
	}
	return PrecompileOutput{Output: output, GasLeft: ctx.Gas - Gas(cost)}, nil
}

// StockPrecompiles returns the standard precompiled contract set of the
// given revision, backed by the go-ethereum implementations.
func StockPrecompiles(revision Revision) PrecompileSet {
	var contracts map[common.Address]geth.PrecompiledContract
	switch {
	case revision >= R13_Cancun:
		contracts = geth.PrecompiledContractsCancun
	case revision >= R09_Berlin:
		contracts = geth.PrecompiledContractsBerlin
	default:
		contracts = geth.PrecompiledContractsIstanbul
	}
	set := make(map[Address]Precompile, len(contracts))
	for address, contract := range contracts {
		set[Address(address)] = gethPrecompile{contract: contract}
	}
	return PrecompileSet{contracts: set}
}
