// Copyright (c) 2024 Sonata Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package aria provides a reference host wiring the metering core to an
// execution engine: it validates transactions, charges the sender, builds
// the weight meter from the chain configuration, dispatches to precompiled
// contracts or the engine, and assembles the result envelope.
package aria

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sonata-foundation/Gauge/go/gauge"
)

// Transaction summarizes the parameters of a transaction to be executed.
type Transaction struct {
	Sender    gauge.Address  // the sender of the transaction, paying for its execution
	Recipient *gauge.Address // the receiver of the transaction, nil if a new contract is to be created
	Nonce     uint64         // the nonce of the sender account, used to prevent replay attacks
	Input     gauge.Data     // the input data, or initialization code for a creation
	Value     gauge.Value    // the amount of network currency to transfer to the recipient
	GasLimit  gauge.Gas      // the maximum amount of gas that can be used by the transaction
	GasPrice  gauge.Value    // the effective price of a unit of gas for this transaction
}

// Processor executes individual transactions against a world state. All
// resource accounting runs through the gauge metering core; the byte-code
// itself is executed by the configured engine.
type Processor struct {
	config      gauge.ChainConfig
	engine      gauge.Engine
	precompiles gauge.PrecompileSet
	check       gauge.CheckConfig
}

// NewProcessor creates a processor for the given chain configuration and
// engine. The fee calculator and base fee are optional validation rules; the
// block gas limit rule is derived from the chain configuration.
func NewProcessor(config gauge.ChainConfig, engine gauge.Engine, fee gauge.FeeCalculator, baseFee *gauge.Value) *Processor {
	return &Processor{
		config:      config,
		engine:      engine,
		precompiles: gauge.StockPrecompiles(config.Revision()),
		check: gauge.CheckConfig{
			BlockGasLimit: gauge.Gas(config.Parameters().BlockGasLimit),
			BaseFee:       baseFee,
			Fee:           fee,
		},
	}
}

// Run executes the given transaction. Validation failures are returned as
// errors from the taxonomy in the gauge package; once execution starts, the
// outcome is reported through the envelope's exit reason. The returned
// envelope always carries the meter the execution was charged against, and
// its used gas reflects the same completed or aborted execution.
func (p *Processor) Run(tx Transaction, state gauge.WorldState) (gauge.CallOrCreateInfo, error) {
	vicinity := gauge.Vicinity{GasPrice: tx.GasPrice, Origin: tx.Sender}
	input := gauge.TransactionInput{
		Nonce:     tx.Nonce,
		GasLimit:  tx.GasLimit,
		Value:     tx.Value,
		Input:     tx.Input,
		Recipient: tx.Recipient,
	}
	if err := gauge.CheckTransaction(vicinity, p.check, input, state); err != nil {
		return gauge.CallOrCreateInfo{}, err
	}
	if err := buyGas(tx, state); err != nil {
		return gauge.CallOrCreateInfo{}, err
	}
	state.SetNonce(tx.Sender, state.GetNonce(tx.Sender)+1)

	limit := p.config.BlockWeightLimit()
	meter, err := gauge.NewWeightMeter(&limit)
	if err != nil {
		return gauge.CallOrCreateInfo{}, err
	}

	intrinsic := gauge.IntrinsicGas(input)
	gas := tx.GasLimit - intrinsic

	if err := meter.ConsumeRefTime(p.config.WeightForGas(uint64(intrinsic))); err != nil {
		info := gauge.CallInfo{
			ExitReason: gauge.Failed(err),
			UsedGas:    gauge.NewValue(uint64(tx.GasLimit)),
			WeightInfo: meter,
		}
		return gauge.WrapCall(info), nil
	}

	if tx.Recipient == nil {
		info, err := p.runCreate(vicinity, tx, gas, meter, state)
		if err != nil {
			return gauge.CallOrCreateInfo{}, err
		}
		p.settle(tx, &info.UsedGas, intrinsic, state)
		info.WeightInfo = meter
		return gauge.WrapCreate(info), nil
	}

	info, err := p.runCall(vicinity, tx, gas, meter, state)
	if err != nil {
		return gauge.CallOrCreateInfo{}, err
	}
	p.settle(tx, &info.UsedGas, intrinsic, state)
	info.WeightInfo = meter
	return gauge.WrapCall(info), nil
}

func (p *Processor) runCall(
	vicinity gauge.Vicinity,
	tx Transaction,
	gas gauge.Gas,
	meter *gauge.WeightMeter,
	state gauge.WorldState,
) (gauge.CallInfo, error) {
	ctx := gauge.PrecompileContext{
		Address: *tx.Recipient,
		Caller:  tx.Sender,
		Value:   tx.Value,
		Gas:     gas,
		Input:   tx.Input,
	}
	output, isPrecompiled, err := p.precompiles.Execute(ctx)
	if isPrecompiled {
		return p.finishPrecompiledCall(gas, output, err, meter), nil
	}

	args := gauge.CallArgs{
		Caller:   tx.Sender,
		Target:   *tx.Recipient,
		Input:    tx.Input,
		Value:    tx.Value,
		GasLimit: gas,
	}
	return p.engine.Call(p.config, vicinity, args, meter, state)
}

func (p *Processor) runCreate(
	vicinity gauge.Vicinity,
	tx Transaction,
	gas gauge.Gas,
	meter *gauge.WeightMeter,
	state gauge.WorldState,
) (gauge.CreateInfo, error) {
	// The created address depends only on sender and nonce; the host
	// derives it so the envelope is consistent independent of the engine.
	createdAddress := ContractAddress(tx.Sender, tx.Nonce, nil, tx.Input)

	args := gauge.CreateArgs{
		Caller:   tx.Sender,
		Init:     tx.Input,
		Value:    tx.Value,
		GasLimit: gas,
	}
	info, err := p.engine.Create(p.config, vicinity, args, meter, state)
	if err != nil {
		return gauge.CreateInfo{}, err
	}
	if info.ExitReason.IsSucceeded() {
		info.Value = createdAddress
	}
	return info, nil
}

// finishPrecompiledCall maps a precompile result into a call envelope and
// charges the gas consumption to the weight meter. A failed or reverted
// precompile consumes all gas of the call.
func (p *Processor) finishPrecompiledCall(
	gas gauge.Gas,
	output gauge.PrecompileOutput,
	err error,
	meter *gauge.WeightMeter,
) gauge.CallInfo {
	var revert *gauge.RevertError
	switch {
	case err == nil:
		gasUsed := gas - output.GasLeft
		if cerr := meter.ConsumeRefTime(p.config.WeightForGas(uint64(gasUsed))); cerr != nil {
			return gauge.CallInfo{
				ExitReason: gauge.Failed(cerr),
				UsedGas:    gauge.NewValue(uint64(gas)),
			}
		}
		return gauge.CallInfo{
			ExitReason: gauge.Succeeded(gauge.ReasonReturned),
			Value:      output.Output,
			UsedGas:    gauge.NewValue(uint64(gasUsed)),
		}
	case errors.As(err, &revert):
		return gauge.CallInfo{
			ExitReason: gauge.Reverted(gauge.ReasonReverted),
			Value:      revert.Output,
			UsedGas:    gauge.NewValue(uint64(gas)),
		}
	default:
		return gauge.CallInfo{
			ExitReason: gauge.Failed(err),
			UsedGas:    gauge.NewValue(uint64(gas)),
		}
	}
}

// settle adds the intrinsic gas to the envelope's gas consumption and
// refunds the sender for the unused remainder of the gas limit.
func (p *Processor) settle(tx Transaction, usedGas *gauge.Value, intrinsic gauge.Gas, state gauge.WorldState) {
	used := gauge.Gas(usedGas.Uint64()) + intrinsic
	if used > tx.GasLimit {
		used = tx.GasLimit
	}
	*usedGas = gauge.NewValue(uint64(used))

	remaining := tx.GasLimit - used
	if remaining > 0 {
		refund := tx.GasPrice.Scale(uint64(remaining))
		state.SetBalance(tx.Sender, gauge.Add(state.GetBalance(tx.Sender), refund))
	}
}

func buyGas(tx Transaction, state gauge.WorldState) error {
	cost := tx.GasPrice.Scale(uint64(tx.GasLimit))
	balance := state.GetBalance(tx.Sender)
	if balance.Cmp(cost) < 0 {
		return gauge.ErrInsufficientFunds
	}
	state.SetBalance(tx.Sender, gauge.Sub(balance, cost))
	return nil
}

// ContractAddress derives the address of a contract created by the given
// sender. A nil salt selects the nonce-based derivation used for plain
// creations; a non-nil salt selects the salted derivation over the
// initialization code.
func ContractAddress(sender gauge.Address, nonce uint64, salt *gauge.Hash, init gauge.Data) gauge.Address {
	if salt == nil {
		return gauge.Address(crypto.CreateAddress(common.Address(sender), nonce))
	}
	initHash := crypto.Keccak256Hash(init)
	return gauge.Address(crypto.CreateAddress2(common.Address(sender), common.Hash(*salt), initHash.Bytes()))
}
