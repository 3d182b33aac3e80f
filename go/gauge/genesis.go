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
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GenesisAccount is the static seed of one account at chain genesis. It is
// consumed exactly once during genesis construction and immutable
// afterwards; there is no online mutation path once the chain starts.
type GenesisAccount struct {
	// Nonce of the account at genesis.
	Nonce Value `json:"nonce"`
	// Balance of the account at genesis.
	Balance Value `json:"balance"`
	// Storage holds the full initial storage of the account.
	Storage map[Key]Word `json:"storage,omitempty"`
	// Code of the account, empty for non-contract accounts.
	Code Code `json:"code"`
}

// IsContract indicates whether the account carries code.
func (a GenesisAccount) IsContract() bool {
	return len(a.Code) > 0
}

// Genesis is the set of accounts seeding the chain state, keyed by address.
type Genesis struct {
	Accounts map[Address]GenesisAccount `json:"accounts"`
}

// Apply seeds the given world state with the genesis accounts. Accounts are
// applied in ascending address order and storage slots in ascending key
// order, so repeated applications to equivalent states produce identical
// results. A nonce that does not fit the state's 64-bit nonce counter is a
// configuration error.
func (g Genesis) Apply(state WorldState) error {
	addresses := maps.Keys(g.Accounts)
	slices.SortFunc(addresses, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, address := range addresses {
		account := g.Accounts[address]
		nonce := account.Nonce.ToUint256()
		if !nonce.IsUint64() {
			return fmt.Errorf("genesis account %v: nonce %v exceeds 64 bits", address, account.Nonce)
		}
		state.SetNonce(address, nonce.Uint64())
		state.SetBalance(address, account.Balance)
		if account.IsContract() {
			state.SetCode(address, account.Code)
		}
		keys := maps.Keys(account.Storage)
		slices.SortFunc(keys, Key.Cmp)
		for _, key := range keys {
			state.SetStorage(address, key, account.Storage[key])
		}
	}
	return nil
}

// CodeHashes computes the code hash of every contract account in the
// genesis set.
func (g Genesis) CodeHashes(hasher *CodeHasher) map[Address]Hash {
	hashes := make(map[Address]Hash)
	for address, account := range g.Accounts {
		if account.IsContract() {
			hashes[address] = hasher.Hash(account.Code)
		}
	}
	return hashes
}

func sortStorageEntries(entries []storageEntryRLP) {
	slices.SortFunc(entries, func(a, b storageEntryRLP) int {
		return a.Key.Cmp(b.Key)
	})
}

// CodeHasher computes keccak-256 code hashes, caching results since genesis
// sets commonly seed many accounts with identical contract code.
type CodeHasher struct {
	cache *lru.Cache[string, Hash]
}

// NewCodeHasher creates a hasher caching up to capacity distinct codes.
func NewCodeHasher(capacity int) (*CodeHasher, error) {
	cache, err := lru.New[string, Hash](capacity)
	if err != nil {
		return nil, err
	}
	return &CodeHasher{cache: cache}, nil
}

// Hash returns the keccak-256 hash of the given code.
func (h *CodeHasher) Hash(code Code) Hash {
	if hash, found := h.cache.Get(string(code)); found {
		return hash
	}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(code)
	var hash Hash
	hasher.Sum(hash[:0])
	h.cache.Add(string(code), hash)
	return hash
}
