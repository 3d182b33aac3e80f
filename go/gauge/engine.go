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

//go:generate mockgen -source engine.go -destination engine_mock.go -package gauge

// CallArgs summarizes the inputs of a contract call.
type CallArgs struct {
	Caller   Address
	Target   Address
	Input    Data
	Value    Value
	GasLimit Gas
}

// CreateArgs summarizes the inputs of a contract creation. A non-nil salt
// selects salted address derivation.
type CreateArgs struct {
	Caller   Address
	Init     Data
	Value    Value
	GasLimit Gas
	Salt     *Hash
}

// Engine is a component capable of executing contract byte-code. It is the
// external collaborator of this package; implementations are registered in
// the engine registry and obtained by name.
//
// The host constructs the weight meter and hands it to the engine; the
// engine must charge the meter once per metered step and abort the execution
// with an out-of-resource exit the moment a consume operation fails. The
// returned envelope's used gas and logs must describe the same completed or
// aborted execution the meter was charged for.
//
// The resulting error is nil whenever the code was correctly processed, even
// if the execution itself ended in a revert or failure; a non-nil error
// indicates a problem inside the engine, in which case the envelope is
// undefined. Engines are required to be thread-safe with respect to distinct
// meters and states.
type Engine interface {
	Call(config ChainConfig, vicinity Vicinity, args CallArgs, meter *WeightMeter, state WorldState) (CallInfo, error)
	Create(config ChainConfig, vicinity Vicinity, args CreateArgs, meter *WeightMeter, state WorldState) (CreateInfo, error)
}
