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
	"fmt"
	"math"
	"math/bits"
)

// WeightRefTimePerMillis is the number of ref-time weight units representing
// one millisecond of block production budget.
const WeightRefTimePerMillis uint64 = 1_000_000_000

// Fraction is a rational number in [0, 1] used to express the share of a
// block's capacity reserved for contract transactions. All arithmetic is
// pure integer arithmetic so that results are bit-identical across
// platforms. Instances must be obtained through NewFraction or Percent.
type Fraction struct {
	numerator   uint64
	denominator uint64
}

// NewFraction creates the fraction numerator/denominator. The denominator
// must be non-zero and the fraction must not exceed one.
func NewFraction(numerator, denominator uint64) (Fraction, error) {
	if denominator == 0 {
		return Fraction{}, fmt.Errorf("invalid fraction: zero denominator")
	}
	if numerator > denominator {
		return Fraction{}, fmt.Errorf("invalid fraction: %d/%d exceeds one", numerator, denominator)
	}
	return Fraction{numerator: numerator, denominator: denominator}, nil
}

// Percent creates the fraction p/100. It panics for p > 100; percentages are
// chain-spec constants, not runtime data.
func Percent(p uint64) Fraction {
	fraction, err := NewFraction(p, 100)
	if err != nil {
		panic(err)
	}
	return fraction
}

// MulFloor computes x * fraction rounded toward zero. The intermediate
// product is computed in 128 bits, so the result is exact for every x.
func (f Fraction) MulFloor(x uint64) uint64 {
	hi, lo := bits.Mul64(x, f.numerator)
	// hi < denominator holds for every fraction <= 1, so Div64 cannot trap.
	quotient, _ := bits.Div64(hi, lo, f.denominator)
	return quotient
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.numerator, f.denominator)
}

// WeightPerGas derives the number of ref-time weight units equivalent to one
// unit of gas for a chain configuration:
//
//	weightPerBlock = WeightRefTimePerMillis * blockTimeMillis
//	weightPerGas   = (txnRatio * weightPerBlock) / blockGasLimit
//
// using saturating multiplication and flooring division. The result is
// guaranteed to be at least one: a configuration yielding zero means the
// block's gas capacity is too large for its time budget, which is a defect
// in the chain specification and triggers a panic rather than a recoverable
// error. The function is pure and may be called from any number of
// goroutines without coordination; it is intended to run once at chain-spec
// construction time.
func WeightPerGas(blockGasLimit uint64, txnRatio Fraction, blockTimeMillis uint64) uint64 {
	if blockGasLimit == 0 {
		panic("invalid chain specification: block gas limit must be positive")
	}
	weightPerBlock := saturatingMul(WeightRefTimePerMillis, blockTimeMillis)
	weightPerGas := txnRatio.MulFloor(weightPerBlock) / blockGasLimit
	if weightPerGas < 1 {
		panic(fmt.Sprintf(
			"invalid chain specification: weight per gas is zero "+
				"(block gas limit %d, txn ratio %v, block time %dms)",
			blockGasLimit, txnRatio, blockTimeMillis))
	}
	return weightPerGas
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
