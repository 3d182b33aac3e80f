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

// Weight is the host runtime's two-dimensional resource unit. RefTime bounds
// computation time, ProofSize bounds the size of the state proof a
// transaction may contribute to. Both are expressed in the host's native
// weight units.
type Weight struct {
	RefTime   uint64 `json:"ref_time"`
	ProofSize uint64 `json:"proof_size"`
}

func (w Weight) String() string {
	return fmt.Sprintf("{ref_time: %d, proof_size: %d}", w.RefTime, w.ProofSize)
}

// dimension is the state of one weight dimension of a meter. A dimension is
// either untracked, in which case consume and refund operations are no-ops,
// or tracked with a fixed limit and a running usage. The two states are
// distinguished by the tracked flag; limit and usage are only meaningful
// while tracked.
type dimension struct {
	tracked bool
	limit   uint64
	usage   uint64
}

func trackedDimension(limit uint64) dimension {
	return dimension{tracked: true, limit: limit}
}

// consume attempts to add cost to the usage counter. The addition is checked:
// an overflow of the counter or an excess over the limit leaves the usage
// untouched and returns exhausted.
func (d *dimension) consume(cost uint64, exhausted ConstError) error {
	if !d.tracked {
		return nil
	}
	usage := d.usage + cost
	if usage < d.usage {
		return exhausted
	}
	if usage > d.limit {
		return exhausted
	}
	d.usage = usage
	return nil
}

// refund subtracts amount from the usage counter, flooring at zero. Refunds
// are advisory credits and are not verified against prior consumption;
// over-refunding clamps instead of failing. This permissive policy is
// deliberate and must be preserved for reproducibility across callers.
func (d *dimension) refund(amount uint64) {
	if !d.tracked {
		return
	}
	if amount > d.usage {
		d.usage = 0
		return
	}
	d.usage -= amount
}

// WeightMeter tracks the weight consumed by a single execution against
// optional per-dimension limits. A meter is exclusively owned by one
// in-flight execution and requires no synchronization. After the execution
// completes the meter may be attached to the result envelope as a read-only
// snapshot of the final usage.
type WeightMeter struct {
	refTime   dimension
	proofSize dimension
}

// NewWeightMeter creates a meter from an optional overall weight limit.
//
// A nil limit produces a meter with both dimensions untracked, on which all
// operations succeed without effect. Such meters are used for simulation and
// gas-estimation contexts that run without resource bounds.
//
// A non-nil limit requires at least one strictly positive dimension;
// otherwise ErrInvalidWeightLimit is returned. Each positive dimension is
// tracked with its usage initialized to zero, a zero dimension remains
// untracked.
func NewWeightMeter(limit *Weight) (*WeightMeter, error) {
	if limit == nil {
		return &WeightMeter{}, nil
	}
	if limit.RefTime == 0 && limit.ProofSize == 0 {
		return nil, ErrInvalidWeightLimit
	}
	meter := &WeightMeter{}
	if limit.RefTime > 0 {
		meter.refTime = trackedDimension(limit.RefTime)
	}
	if limit.ProofSize > 0 {
		meter.proofSize = trackedDimension(limit.ProofSize)
	}
	return meter, nil
}

// ConsumeRefTime charges the given ref-time cost against the meter. If the
// dimension is untracked the call succeeds without effect. A charge that
// would overflow the usage counter or exceed the limit fails with
// ErrRefTimeExhausted and leaves the usage unchanged.
func (m *WeightMeter) ConsumeRefTime(cost uint64) error {
	return m.refTime.consume(cost, ErrRefTimeExhausted)
}

// ConsumeProofSize charges the given proof-size cost against the meter; the
// semantics match ConsumeRefTime.
func (m *WeightMeter) ConsumeProofSize(cost uint64) error {
	return m.proofSize.consume(cost, ErrProofSizeExhausted)
}

// RefundRefTime credits previously charged ref-time back to the meter. The
// usage floors at zero and the call never fails.
func (m *WeightMeter) RefundRefTime(amount uint64) {
	m.refTime.refund(amount)
}

// RefundProofSize credits previously charged proof-size back to the meter.
// The usage floors at zero and the call never fails.
func (m *WeightMeter) RefundProofSize(amount uint64) {
	m.proofSize.refund(amount)
}

// RefTime reports the state of the ref-time dimension. Usage and limit are
// only meaningful if tracked is true.
func (m *WeightMeter) RefTime() (usage, limit uint64, tracked bool) {
	return m.refTime.usage, m.refTime.limit, m.refTime.tracked
}

// ProofSize reports the state of the proof-size dimension. Usage and limit
// are only meaningful if tracked is true.
func (m *WeightMeter) ProofSize() (usage, limit uint64, tracked bool) {
	return m.proofSize.usage, m.proofSize.limit, m.proofSize.tracked
}

// Usage summarizes the current consumption of the meter. Untracked
// dimensions report zero.
func (m *WeightMeter) Usage() Weight {
	return Weight{
		RefTime:   m.refTime.usage,
		ProofSize: m.proofSize.usage,
	}
}

// weightMeterJSON is the wire representation of a meter. A nil limit/usage
// pair marks an untracked dimension, which is distinct from a tracked
// dimension with zero usage.
type weightMeterJSON struct {
	RefTimeLimit   *uint64 `json:"ref_time_limit"`
	ProofSizeLimit *uint64 `json:"proof_size_limit"`
	RefTimeUsage   *uint64 `json:"ref_time_usage"`
	ProofSizeUsage *uint64 `json:"proof_size_usage"`
}

func (m WeightMeter) MarshalJSON() ([]byte, error) {
	var enc weightMeterJSON
	if m.refTime.tracked {
		limit, usage := m.refTime.limit, m.refTime.usage
		enc.RefTimeLimit, enc.RefTimeUsage = &limit, &usage
	}
	if m.proofSize.tracked {
		limit, usage := m.proofSize.limit, m.proofSize.usage
		enc.ProofSizeLimit, enc.ProofSizeUsage = &limit, &usage
	}
	return json.Marshal(enc)
}

func (m *WeightMeter) UnmarshalJSON(data []byte) error {
	var enc weightMeterJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	refTime, err := decodeDimension(enc.RefTimeLimit, enc.RefTimeUsage, "ref_time")
	if err != nil {
		return err
	}
	proofSize, err := decodeDimension(enc.ProofSizeLimit, enc.ProofSizeUsage, "proof_size")
	if err != nil {
		return err
	}
	m.refTime = refTime
	m.proofSize = proofSize
	return nil
}

func decodeDimension(limit, usage *uint64, name string) (dimension, error) {
	if (limit == nil) != (usage == nil) {
		return dimension{}, fmt.Errorf("half-configured %s dimension: limit and usage must both be present or both be absent", name)
	}
	if limit == nil {
		return dimension{}, nil
	}
	if *usage > *limit {
		return dimension{}, fmt.Errorf("invalid %s dimension: usage %d exceeds limit %d", name, *usage, *limit)
	}
	return dimension{tracked: true, limit: *limit, usage: *usage}, nil
}
