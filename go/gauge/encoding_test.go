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
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/exp/maps"
)

func TestWeightMeterCodec_RoundTripsMeterStates(t *testing.T) {
	consumed := func(limit *Weight, refTime, proofSize uint64) *WeightMeter {
		meter, err := NewWeightMeter(limit)
		if err != nil {
			t.Fatalf("failed to create meter: %v", err)
		}
		if err := meter.ConsumeRefTime(refTime); err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		if err := meter.ConsumeProofSize(proofSize); err != nil {
			t.Fatalf("failed to consume: %v", err)
		}
		return meter
	}

	tests := map[string]*WeightMeter{
		"unconstrained":    consumed(nil, 0, 0),
		"fresh":            consumed(&Weight{RefTime: 100, ProofSize: 50}, 0, 0),
		"partially used":   consumed(&Weight{RefTime: 100, ProofSize: 50}, 42, 7),
		"fully used":       consumed(&Weight{RefTime: 100, ProofSize: 50}, 100, 50),
		"single dimension": consumed(&Weight{RefTime: 100}, 42, 0),
	}

	for name, meter := range tests {
		t.Run(name, func(t *testing.T) {
			encoded, err := rlp.EncodeToBytes(meter)
			if err != nil {
				t.Fatalf("failed to encode meter: %v", err)
			}
			var restored WeightMeter
			if err := rlp.DecodeBytes(encoded, &restored); err != nil {
				t.Fatalf("failed to restore meter: %v", err)
			}
			if restored != *meter {
				t.Errorf("unexpected restored meter, wanted %v, got %v", *meter, restored)
			}
		})
	}
}

func TestWeightMeterCodec_UntrackedAndZeroLimitEncodeDifferently(t *testing.T) {
	untracked, err := NewWeightMeter(nil)
	if err != nil {
		t.Fatalf("failed to create meter: %v", err)
	}
	tracked, err := NewWeightMeter(&Weight{RefTime: 1})
	if err != nil {
		t.Fatalf("failed to create meter: %v", err)
	}
	a, err := rlp.EncodeToBytes(untracked)
	if err != nil {
		t.Fatalf("failed to encode meter: %v", err)
	}
	b, err := rlp.EncodeToBytes(tracked)
	if err != nil {
		t.Fatalf("failed to encode meter: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Errorf("untracked and tracked meters must have distinct encodings")
	}
}

func TestWeightMeterCodec_InvalidEncodingsAreRejected(t *testing.T) {
	tests := map[string]weightMeterRLP{
		"future version": {
			Version: codecVersion + 1,
		},
		"untracked dimension with usage": {
			Version: codecVersion,
			RefTime: dimensionRLP{Tracked: false, Usage: 1},
		},
		"usage above limit": {
			Version: codecVersion,
			RefTime: dimensionRLP{Tracked: true, Limit: 10, Usage: 11},
		},
	}

	for name, enc := range tests {
		t.Run(name, func(t *testing.T) {
			encoded, err := rlp.EncodeToBytes(enc)
			if err != nil {
				t.Fatalf("failed to encode raw meter: %v", err)
			}
			var meter WeightMeter
			if rlp.DecodeBytes(encoded, &meter) == nil {
				t.Errorf("expected decoding to fail, but instead it produced %v", meter)
			}
		})
	}
}

func TestExecutionInfoCodec_RoundTripsCallEnvelopes(t *testing.T) {
	meter, err := NewWeightMeter(&Weight{RefTime: 1000})
	if err != nil {
		t.Fatalf("failed to create meter: %v", err)
	}
	if err := meter.ConsumeRefTime(525); err != nil {
		t.Fatalf("failed to consume: %v", err)
	}

	tests := map[string]CallInfo{
		"success with meter": {
			ExitReason: Succeeded(ReasonReturned),
			Value:      Data{0x01, 0x02, 0x03},
			UsedGas:    NewValue(21_042),
			WeightInfo: meter,
			Logs: []Log{{
				Address: Address{0x01},
				Topics:  []Hash{{0x02}, {0x03}},
				Data:    Data{0x04},
			}},
		},
		"failure without meter": {
			ExitReason: Failed(ErrRefTimeExhausted),
			UsedGas:    NewValue(100_000),
		},
	}

	for name, info := range tests {
		t.Run(name, func(t *testing.T) {
			encoded, err := rlp.EncodeToBytes(&info)
			if err != nil {
				t.Fatalf("failed to encode envelope: %v", err)
			}
			var restored CallInfo
			if err := rlp.DecodeBytes(encoded, &restored); err != nil {
				t.Fatalf("failed to restore envelope: %v", err)
			}
			if restored.ExitReason != info.ExitReason {
				t.Errorf("unexpected exit reason, wanted %v, got %v", info.ExitReason, restored.ExitReason)
			}
			if !bytes.Equal(restored.Value, info.Value) {
				t.Errorf("unexpected value, wanted %v, got %v", info.Value, restored.Value)
			}
			if restored.UsedGas != info.UsedGas {
				t.Errorf("unexpected used gas, wanted %v, got %v", info.UsedGas, restored.UsedGas)
			}
			if (restored.WeightInfo == nil) != (info.WeightInfo == nil) {
				t.Fatalf("meter presence not preserved")
			}
			if info.WeightInfo != nil && *restored.WeightInfo != *info.WeightInfo {
				t.Errorf("unexpected meter, wanted %v, got %v", *info.WeightInfo, *restored.WeightInfo)
			}
			if len(restored.Logs) != len(info.Logs) {
				t.Errorf("unexpected number of logs, wanted %d, got %d", len(info.Logs), len(restored.Logs))
			}
		})
	}
}

func TestExecutionInfoCodec_RoundTripsCreateEnvelopes(t *testing.T) {
	info := CreateInfo{
		ExitReason: Succeeded(ReasonReturned),
		Value:      Address{0xAA, 0xBB, 0xCC},
		UsedGas:    NewValue(60_000),
	}
	encoded, err := rlp.EncodeToBytes(&info)
	if err != nil {
		t.Fatalf("failed to encode envelope: %v", err)
	}
	var restored CreateInfo
	if err := rlp.DecodeBytes(encoded, &restored); err != nil {
		t.Fatalf("failed to restore envelope: %v", err)
	}
	if restored.Value != info.Value {
		t.Errorf("unexpected created address, wanted %v, got %v", info.Value, restored.Value)
	}
}

func TestExecutionInfoCodec_InvalidStatusIsRejected(t *testing.T) {
	encoded, err := rlp.EncodeToBytes(executionInfoRLP[Data]{
		Version: codecVersion,
		Status:  42,
	})
	if err != nil {
		t.Fatalf("failed to encode raw envelope: %v", err)
	}
	var info CallInfo
	if rlp.DecodeBytes(encoded, &info) == nil {
		t.Errorf("expected decoding to fail, but instead it produced %v", info)
	}
}

func TestCallOrCreateCodec_RoundTripsBothVariants(t *testing.T) {
	tests := map[string]CallOrCreateInfo{
		"call": WrapCall(CallInfo{
			ExitReason: Reverted(ReasonReverted),
			Value:      Data{0xDE, 0xAD},
			UsedGas:    NewValue(30_000),
		}),
		"create": WrapCreate(CreateInfo{
			ExitReason: Succeeded(ReasonReturned),
			Value:      Address{0x11},
			UsedGas:    NewValue(53_000),
		}),
	}

	for name, info := range tests {
		t.Run(name, func(t *testing.T) {
			encoded, err := rlp.EncodeToBytes(info)
			if err != nil {
				t.Fatalf("failed to encode wrapper: %v", err)
			}
			var restored CallOrCreateInfo
			if err := rlp.DecodeBytes(encoded, &restored); err != nil {
				t.Fatalf("failed to restore wrapper: %v", err)
			}
			if _, isCall := info.Call(); isCall {
				if _, ok := restored.Call(); !ok {
					t.Fatalf("restored wrapper lost its call variant")
				}
			} else if _, ok := restored.Create(); !ok {
				t.Fatalf("restored wrapper lost its create variant")
			}
			if want, got := info.ExitReason(), restored.ExitReason(); want != got {
				t.Errorf("unexpected exit reason, wanted %v, got %v", want, got)
			}
			if want, got := info.UsedGas(), restored.UsedGas(); want != got {
				t.Errorf("unexpected used gas, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestCallOrCreateCodec_EmptyWrapperAndUnknownKindAreRejected(t *testing.T) {
	if _, err := rlp.EncodeToBytes(CallOrCreateInfo{}); err == nil {
		t.Errorf("expected encoding of an empty wrapper to fail")
	}

	encoded, err := rlp.EncodeToBytes(callOrCreateRLP{Version: codecVersion, Kind: 42})
	if err != nil {
		t.Fatalf("failed to encode raw wrapper: %v", err)
	}
	var info CallOrCreateInfo
	if rlp.DecodeBytes(encoded, &info) == nil {
		t.Errorf("expected decoding of an unknown kind to fail")
	}
}

func TestGenesisAccountCodec_RoundTripIsOrderIndependent(t *testing.T) {
	account := GenesisAccount{
		Nonce:   NewValue(7),
		Balance: NewValue(1_000_000),
		Storage: map[Key]Word{
			{0x03}: {0x30},
			{0x01}: {0x10},
			{0x02}: {0x20},
		},
		Code: Code{0x60, 0x00},
	}

	encoded, err := rlp.EncodeToBytes(account)
	if err != nil {
		t.Fatalf("failed to encode account: %v", err)
	}
	var restored GenesisAccount
	if err := rlp.DecodeBytes(encoded, &restored); err != nil {
		t.Fatalf("failed to restore account: %v", err)
	}
	if restored.Nonce != account.Nonce || restored.Balance != account.Balance {
		t.Errorf("unexpected restored account, wanted %v, got %v", account, restored)
	}
	if !bytes.Equal(restored.Code, account.Code) {
		t.Errorf("unexpected restored code, wanted %v, got %v", account.Code, restored.Code)
	}
	if !maps.Equal(restored.Storage, account.Storage) {
		t.Errorf("unexpected restored storage, wanted %v, got %v", account.Storage, restored.Storage)
	}

	// The encoding is canonical: map iteration order has no influence.
	again, err := rlp.EncodeToBytes(account)
	if err != nil {
		t.Fatalf("failed to encode account: %v", err)
	}
	if !bytes.Equal(encoded, again) {
		t.Errorf("encoding is not deterministic")
	}
}

func TestGenesisAccountCodec_UnorderedStorageIsRejected(t *testing.T) {
	tests := map[string][]storageEntryRLP{
		"descending": {{Key: Key{0x02}}, {Key: Key{0x01}}},
		"duplicate":  {{Key: Key{0x01}}, {Key: Key{0x01}}},
	}

	for name, entries := range tests {
		t.Run(name, func(t *testing.T) {
			encoded, err := rlp.EncodeToBytes(genesisAccountRLP{
				Version: codecVersion,
				Storage: entries,
			})
			if err != nil {
				t.Fatalf("failed to encode raw account: %v", err)
			}
			var account GenesisAccount
			if rlp.DecodeBytes(encoded, &account) == nil {
				t.Errorf("expected decoding to fail, but instead it produced %v", account)
			}
		})
	}
}
