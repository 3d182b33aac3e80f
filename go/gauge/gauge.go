// Copyright (c) 2024 Sonata Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package gauge bridges the two resource-accounting models met when running
// contract byte-code on a weight-metered host: the virtual machine's native
// gas unit and the host's two-dimensional weight unit (computation time and
// state-proof size).
//
// The package provides the weight meter charged during an execution, the
// calibration deriving the weight-per-gas conversion ratio from block
// capacity parameters, the result envelopes carrying execution outcomes, and
// the interface boundaries towards execution engines, precompiled contracts,
// transaction validation, and genesis construction. It contains no
// interpreter; engines are external collaborators registered by name.
package gauge
