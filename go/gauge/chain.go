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

// ChainParameters lists the capacity parameters of a chain specification
// from which the gas/weight conversion is calibrated.
type ChainParameters struct {
	// BlockGasLimit is the total gas capacity of one block. Must be
	// positive.
	BlockGasLimit uint64

	// TxnRatio is the share of the block capacity reserved for contract
	// transactions.
	TxnRatio Fraction

	// BlockTimeMillis is the block production budget in milliseconds.
	BlockTimeMillis uint64

	// BlockProofSize is the proof-size budget of one block in weight
	// units. Zero leaves the proof-size dimension unmetered.
	BlockProofSize uint64

	// Revision selects the precompiled contract set available on the
	// chain.
	Revision Revision
}

// ChainConfig is the calibrated, immutable configuration threaded into every
// execution context. It carries the weight-per-gas ratio computed once at
// construction time; holding the ratio here instead of in mutable global
// state keeps the metering core free of hidden dependencies.
type ChainConfig struct {
	params       ChainParameters
	weightPerGas uint64
}

// NewChainConfig calibrates a configuration from the given parameters. It
// panics if the parameters yield a weight-per-gas ratio below one, since
// that can only arise from a miscalibrated chain specification, never from
// transaction data.
func NewChainConfig(params ChainParameters) ChainConfig {
	return ChainConfig{
		params:       params,
		weightPerGas: WeightPerGas(params.BlockGasLimit, params.TxnRatio, params.BlockTimeMillis),
	}
}

// Parameters returns the capacity parameters the configuration was
// calibrated from.
func (c ChainConfig) Parameters() ChainParameters {
	return c.params
}

// WeightPerGas returns the calibrated ratio of ref-time weight units per
// unit of gas. The result is always at least one.
func (c ChainConfig) WeightPerGas() uint64 {
	return c.weightPerGas
}

// Revision returns the precompile revision of the chain.
func (c ChainConfig) Revision() Revision {
	return c.params.Revision
}

// WeightForGas converts a gas amount into its equivalent ref-time weight,
// saturating at the maximal representable weight.
func (c ChainConfig) WeightForGas(gas uint64) uint64 {
	return saturatingMul(gas, c.weightPerGas)
}

// GasForWeight converts a ref-time weight into the equivalent gas amount,
// rounding toward zero.
func (c ChainConfig) GasForWeight(refTime uint64) uint64 {
	return refTime / c.weightPerGas
}

// BlockWeightLimit derives the per-block weight limit used to construct the
// meter of an execution: the ref-time share reserved for transactions and
// the configured proof-size budget.
func (c ChainConfig) BlockWeightLimit() Weight {
	weightPerBlock := saturatingMul(WeightRefTimePerMillis, c.params.BlockTimeMillis)
	return Weight{
		RefTime:   c.params.TxnRatio.MulFloor(weightPerBlock),
		ProofSize: c.params.BlockProofSize,
	}
}
