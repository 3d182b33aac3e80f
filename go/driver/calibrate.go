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
	"fmt"

	"github.com/dsnet/golib/unitconv"
	log "github.com/inconshreveable/log15"
	"github.com/urfave/cli/v2"

	"github.com/sonata-foundation/Gauge/go/gauge"
)

var CalibrateCmd = cli.Command{
	Action: doCalibrate,
	Name:   "calibrate",
	Usage:  "Derives the weight-per-gas ratio of a chain configuration",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "block-gas-limit",
			Usage:    "total gas capacity of one block",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "txn-ratio",
			Usage: "percentage of the block capacity reserved for transactions",
			Value: 75,
		},
		&cli.Uint64Flag{
			Name:  "block-time",
			Usage: "block production budget in milliseconds",
			Value: 2000,
		},
		&cli.Uint64Flag{
			Name:  "proof-size",
			Usage: "proof-size budget of one block in weight units, 0 to leave unmetered",
		},
	},
}

func doCalibrate(context *cli.Context) (err error) {
	// A miscalibrated specification panics in the core; surface it as a
	// regular command failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	logger := log.New("module", "calibrate")

	config := gauge.NewChainConfig(gauge.ChainParameters{
		BlockGasLimit:   context.Uint64("block-gas-limit"),
		TxnRatio:        gauge.Percent(context.Uint64("txn-ratio")),
		BlockTimeMillis: context.Uint64("block-time"),
		BlockProofSize:  context.Uint64("proof-size"),
	})

	limit := config.BlockWeightLimit()
	logger.Info("calibrated chain configuration",
		"weightPerGas", config.WeightPerGas(),
		"refTimeLimit", unitconv.FormatPrefix(float64(limit.RefTime), unitconv.SI, 2),
		"proofSizeLimit", unitconv.FormatPrefix(float64(limit.ProofSize), unitconv.SI, 2),
		"gasEquivalent", unitconv.FormatPrefix(float64(config.GasForWeight(limit.RefTime)), unitconv.SI, 2),
	)
	return nil
}
