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

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package gauge

// WorldState is an interface to access and manipulate the account state of
// the chain. The state is a collection of accounts, each with a balance, a
// nonce, optional code and storage. It is the surface consumed by genesis
// construction, transaction validation, and execution engines; how the state
// is persisted is not a concern of this package.
type WorldState interface {
	AccountExists(Address) bool

	GetBalance(Address) Value
	SetBalance(Address, Value)

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetCode(Address) Code
	GetCodeHash(Address) Hash
	SetCode(Address, Code)

	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word)
}

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Key represents the 256-bit (32 bytes) key of a storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 byte) word of storage.
type Word [32]byte

// Value represents a 256-bit unsigned integer, typically an amount of chain
// currency or a gas price.
type Value [32]byte

// Hash represents the 256-bit (32 bytes) hash of code, a block, a log topic
// or similar sequence of cryptographic summary information.
type Hash [32]byte

// Code represents the byte-code of a contract.
type Code []byte

// Data represents the input or output of contract invocations.
type Data []byte

// Gas represents the type used to represent the Gas values.
type Gas int64
