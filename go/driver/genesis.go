// Copyright (c) 2024 Sonata Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	log "github.com/inconshreveable/log15"
	"github.com/urfave/cli/v2"

	"github.com/sonata-foundation/Gauge/go/gauge"
)

var GenesisCmd = cli.Command{
	Action: doGenesis,
	Name:   "genesis",
	Usage:  "Summarizes a genesis allocation file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Usage:    "path of the genesis allocation JSON file",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "code-cache",
			Usage: "capacity of the code-hash cache",
			Value: 1024,
		},
	},
}

func doGenesis(context *cli.Context) error {
	logger := log.New("module", "genesis")

	data, err := os.ReadFile(context.String("file"))
	if err != nil {
		return err
	}
	var genesis gauge.Genesis
	if err := json.Unmarshal(data, &genesis); err != nil {
		return fmt.Errorf("invalid genesis allocation: %w", err)
	}

	hasher, err := gauge.NewCodeHasher(context.Int("code-cache"))
	if err != nil {
		return err
	}

	totalBalance := uint256.NewInt(0)
	contracts := 0
	for _, account := range genesis.Accounts {
		totalBalance.Add(totalBalance, account.Balance.ToUint256())
		if account.IsContract() {
			contracts++
		}
	}

	logger.Info("genesis allocation",
		"accounts", len(genesis.Accounts),
		"contracts", contracts,
		"totalBalance", totalBalance.String(),
	)
	for address, hash := range genesis.CodeHashes(hasher) {
		logger.Info("contract account", "address", address.String(), "codeHash", hash.String())
	}
	return nil
}
