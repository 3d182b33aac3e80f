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
	"encoding/json"
	"fmt"
)

// ExitStatus classifies how an execution ended.
type ExitStatus int

const (
	// ExitSucceeded marks a normal exit; state changes are committed.
	ExitSucceeded ExitStatus = iota
	// ExitReverted marks an explicit revert; state changes are rolled
	// back but the output is returned to the caller.
	ExitReverted
	// ExitFailed marks an execution-aborting error such as resource
	// exhaustion; state changes are rolled back and all gas is consumed.
	ExitFailed
)

func (s ExitStatus) String() string {
	switch s {
	case ExitSucceeded:
		return "succeeded"
	case ExitReverted:
		return "reverted"
	case ExitFailed:
		return "failed"
	default:
		return fmt.Sprintf("ExitStatus(%d)", int(s))
	}
}

func (s ExitStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case ExitSucceeded, ExitReverted, ExitFailed:
		return json.Marshal(s.String())
	default:
		return nil, fmt.Errorf("invalid exit status: %d", int(s))
	}
}

func (s *ExitStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "succeeded":
		*s = ExitSucceeded
	case "reverted":
		*s = ExitReverted
	case "failed":
		*s = ExitFailed
	default:
		return fmt.Errorf("unknown exit status: %s", str)
	}
	return nil
}

// ExitReason is the outcome classification of an execution together with a
// machine-readable reason.
type ExitReason struct {
	Status ExitStatus `json:"status"`
	Reason string     `json:"reason"`
}

// Machine-readable exit reasons shared between execution engines and hosts.
const (
	ReasonStopped       = "stopped"
	ReasonReturned      = "returned"
	ReasonReverted      = "reverted"
	ReasonOutOfGas      = "out of gas"
	ReasonOutOfResource = "out of resource"
)

// Succeeded creates a normal-exit reason.
func Succeeded(reason string) ExitReason {
	return ExitReason{Status: ExitSucceeded, Reason: reason}
}

// Reverted creates a revert exit reason.
func Reverted(reason string) ExitReason {
	return ExitReason{Status: ExitReverted, Reason: reason}
}

// Failed creates a fatal-error exit reason from the triggering error.
func Failed(err error) ExitReason {
	return ExitReason{Status: ExitFailed, Reason: err.Error()}
}

// IsSucceeded indicates whether the execution ended in a normal exit.
func (r ExitReason) IsSucceeded() bool {
	return r.Status == ExitSucceeded
}

func (r ExitReason) String() string {
	return fmt.Sprintf("%v (%s)", r.Status, r.Reason)
}

// Log is a log entry emitted as a side effect of a contract execution. The
// order of entries within one execution is significant and must be
// preserved.
type Log struct {
	Address Address `json:"address"`
	Topics  []Hash  `json:"topics"`
	Data    Data    `json:"data"`
}

// Vicinity is the immutable per-transaction context visible to every step of
// one execution. It is supplied once before execution starts and never
// mutated afterwards.
type Vicinity struct {
	// GasPrice is the effective gas price of the current transaction.
	GasPrice Value `json:"gas_price"`
	// Origin is the externally owned account the transaction originates
	// from.
	Origin Address `json:"origin"`
}

// ExecutionInfo is the envelope carrying the outcome of one execution: the
// exit classification, the produced payload, the total gas consumed, an
// optional snapshot of the weight meter the execution was metered with, and
// the emitted logs.
//
// UsedGas and the meter snapshot must describe the same completed or aborted
// execution; hosts assembling an envelope must never mix values from
// different attempts.
type ExecutionInfo[T any] struct {
	ExitReason ExitReason   `json:"exit_reason"`
	Value      T            `json:"value"`
	UsedGas    Value        `json:"used_gas"`
	WeightInfo *WeightMeter `json:"weight_info"`
	Logs       []Log        `json:"logs"`
}

// CallInfo is the result envelope of a contract call, carrying the returned
// bytes.
type CallInfo = ExecutionInfo[Data]

// CreateInfo is the result envelope of a contract creation, carrying the
// address of the created contract.
type CreateInfo = ExecutionInfo[Address]

// CallOrCreateInfo wraps either a call or a creation envelope for callers
// that do not statically know the transaction kind. Exactly one of the two
// variants is set.
type CallOrCreateInfo struct {
	call   *CallInfo
	create *CreateInfo
}

// WrapCall creates a CallOrCreateInfo holding a call envelope.
func WrapCall(info CallInfo) CallOrCreateInfo {
	return CallOrCreateInfo{call: &info}
}

// WrapCreate creates a CallOrCreateInfo holding a creation envelope.
func WrapCreate(info CreateInfo) CallOrCreateInfo {
	return CallOrCreateInfo{create: &info}
}

// Call returns the wrapped call envelope, if any.
func (i CallOrCreateInfo) Call() (*CallInfo, bool) {
	return i.call, i.call != nil
}

// Create returns the wrapped creation envelope, if any.
func (i CallOrCreateInfo) Create() (*CreateInfo, bool) {
	return i.create, i.create != nil
}

// ExitReason returns the exit classification of the wrapped envelope.
func (i CallOrCreateInfo) ExitReason() ExitReason {
	if i.call != nil {
		return i.call.ExitReason
	}
	if i.create != nil {
		return i.create.ExitReason
	}
	return ExitReason{}
}

// UsedGas returns the gas consumption of the wrapped envelope.
func (i CallOrCreateInfo) UsedGas() Value {
	if i.call != nil {
		return i.call.UsedGas
	}
	if i.create != nil {
		return i.create.UsedGas
	}
	return Value{}
}

type callOrCreateJSON struct {
	Call   *CallInfo   `json:"call,omitempty"`
	Create *CreateInfo `json:"create,omitempty"`
}

func (i CallOrCreateInfo) MarshalJSON() ([]byte, error) {
	if (i.call == nil) == (i.create == nil) {
		return nil, fmt.Errorf("invalid call-or-create info: exactly one variant must be set")
	}
	return json.Marshal(callOrCreateJSON{Call: i.call, Create: i.create})
}

func (i *CallOrCreateInfo) UnmarshalJSON(data []byte) error {
	var enc callOrCreateJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	if (enc.Call == nil) == (enc.Create == nil) {
		return fmt.Errorf("invalid call-or-create info: exactly one variant must be set")
	}
	i.call = enc.Call
	i.create = enc.Create
	return nil
}
