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
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// codecVersion is the version tag leading every binary encoding produced by
// this package. Decoders reject encodings with a different version instead
// of guessing field layouts.
const codecVersion uint8 = 1

// dimensionRLP is the wire form of one meter dimension. The explicit tracked
// flag keeps an absent dimension distinguishable from a zero-valued one.
type dimensionRLP struct {
	Tracked bool
	Limit   uint64
	Usage   uint64
}

func (d dimension) toRLP() dimensionRLP {
	return dimensionRLP{Tracked: d.tracked, Limit: d.limit, Usage: d.usage}
}

func (d dimensionRLP) decode(name string) (dimension, error) {
	if !d.Tracked {
		if d.Limit != 0 || d.Usage != 0 {
			return dimension{}, fmt.Errorf("invalid %s dimension: untracked with non-zero limit or usage", name)
		}
		return dimension{}, nil
	}
	if d.Usage > d.Limit {
		return dimension{}, fmt.Errorf("invalid %s dimension: usage %d exceeds limit %d", name, d.Usage, d.Limit)
	}
	return dimension{tracked: true, limit: d.Limit, usage: d.Usage}, nil
}

type weightMeterRLP struct {
	Version   uint8
	RefTime   dimensionRLP
	ProofSize dimensionRLP
}

func (m *WeightMeter) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, weightMeterRLP{
		Version:   codecVersion,
		RefTime:   m.refTime.toRLP(),
		ProofSize: m.proofSize.toRLP(),
	})
}

func (m *WeightMeter) DecodeRLP(s *rlp.Stream) error {
	var enc weightMeterRLP
	if err := s.Decode(&enc); err != nil {
		return err
	}
	if enc.Version != codecVersion {
		return fmt.Errorf("unsupported weight meter encoding version: %d", enc.Version)
	}
	refTime, err := enc.RefTime.decode("ref_time")
	if err != nil {
		return err
	}
	proofSize, err := enc.ProofSize.decode("proof_size")
	if err != nil {
		return err
	}
	m.refTime = refTime
	m.proofSize = proofSize
	return nil
}

type executionInfoRLP[T any] struct {
	Version    uint8
	Status     uint8
	Reason     string
	Value      T
	UsedGas    Value
	WeightInfo *WeightMeter `rlp:"nil"`
	Logs       []Log
}

func (info *ExecutionInfo[T]) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, executionInfoRLP[T]{
		Version:    codecVersion,
		Status:     uint8(info.ExitReason.Status),
		Reason:     info.ExitReason.Reason,
		Value:      info.Value,
		UsedGas:    info.UsedGas,
		WeightInfo: info.WeightInfo,
		Logs:       info.Logs,
	})
}

func (info *ExecutionInfo[T]) DecodeRLP(s *rlp.Stream) error {
	var enc executionInfoRLP[T]
	if err := s.Decode(&enc); err != nil {
		return err
	}
	if enc.Version != codecVersion {
		return fmt.Errorf("unsupported execution info encoding version: %d", enc.Version)
	}
	status := ExitStatus(enc.Status)
	if status != ExitSucceeded && status != ExitReverted && status != ExitFailed {
		return fmt.Errorf("invalid exit status: %d", enc.Status)
	}
	info.ExitReason = ExitReason{Status: status, Reason: enc.Reason}
	info.Value = enc.Value
	info.UsedGas = enc.UsedGas
	info.WeightInfo = enc.WeightInfo
	info.Logs = enc.Logs
	return nil
}

// Kind tags of the CallOrCreateInfo binary encoding.
const (
	callInfoKind   uint8 = 1
	createInfoKind uint8 = 2
)

type callOrCreateRLP struct {
	Version uint8
	Kind    uint8
	Payload []byte
}

func (i CallOrCreateInfo) EncodeRLP(w io.Writer) error {
	var kind uint8
	var payload []byte
	var err error
	switch {
	case i.call != nil && i.create == nil:
		kind = callInfoKind
		payload, err = rlp.EncodeToBytes(i.call)
	case i.create != nil && i.call == nil:
		kind = createInfoKind
		payload, err = rlp.EncodeToBytes(i.create)
	default:
		return fmt.Errorf("invalid call-or-create info: exactly one variant must be set")
	}
	if err != nil {
		return err
	}
	return rlp.Encode(w, callOrCreateRLP{Version: codecVersion, Kind: kind, Payload: payload})
}

func (i *CallOrCreateInfo) DecodeRLP(s *rlp.Stream) error {
	var enc callOrCreateRLP
	if err := s.Decode(&enc); err != nil {
		return err
	}
	if enc.Version != codecVersion {
		return fmt.Errorf("unsupported call-or-create encoding version: %d", enc.Version)
	}
	switch enc.Kind {
	case callInfoKind:
		var info CallInfo
		if err := rlp.DecodeBytes(enc.Payload, &info); err != nil {
			return err
		}
		i.call, i.create = &info, nil
	case createInfoKind:
		var info CreateInfo
		if err := rlp.DecodeBytes(enc.Payload, &info); err != nil {
			return err
		}
		i.create, i.call = &info, nil
	default:
		return fmt.Errorf("unknown call-or-create kind: %d", enc.Kind)
	}
	return nil
}

// storageEntryRLP is one storage slot of a genesis account. Entries are
// serialized in strictly ascending key order so that equal accounts have
// equal encodings.
type storageEntryRLP struct {
	Key   Key
	Value Word
}

type genesisAccountRLP struct {
	Version uint8
	Nonce   Value
	Balance Value
	Storage []storageEntryRLP
	Code    []byte
}

func (a GenesisAccount) EncodeRLP(w io.Writer) error {
	entries := make([]storageEntryRLP, 0, len(a.Storage))
	for key, value := range a.Storage {
		entries = append(entries, storageEntryRLP{Key: key, Value: value})
	}
	sortStorageEntries(entries)
	return rlp.Encode(w, genesisAccountRLP{
		Version: codecVersion,
		Nonce:   a.Nonce,
		Balance: a.Balance,
		Storage: entries,
		Code:    a.Code,
	})
}

func (a *GenesisAccount) DecodeRLP(s *rlp.Stream) error {
	var enc genesisAccountRLP
	if err := s.Decode(&enc); err != nil {
		return err
	}
	if enc.Version != codecVersion {
		return fmt.Errorf("unsupported genesis account encoding version: %d", enc.Version)
	}
	var storage map[Key]Word
	if len(enc.Storage) > 0 {
		storage = make(map[Key]Word, len(enc.Storage))
		for i, entry := range enc.Storage {
			if i > 0 && enc.Storage[i-1].Key.Cmp(entry.Key) >= 0 {
				return fmt.Errorf("non-canonical genesis storage: keys must be strictly ascending")
			}
			storage[entry.Key] = entry.Value
		}
	}
	a.Nonce = enc.Nonce
	a.Balance = enc.Balance
	a.Storage = storage
	a.Code = enc.Code
	return nil
}
