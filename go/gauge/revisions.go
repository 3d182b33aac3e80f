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

// Revision is an enumeration for EVM specification revisions (aka.
// Hard-Forks). It selects the set of precompiled contracts available to an
// execution.
type Revision int

const (
	R07_Istanbul Revision = iota
	R09_Berlin
	R10_London
	R11_Paris
	R12_Shanghai
	R13_Cancun
)

func (r Revision) String() string {
	switch r {
	case R07_Istanbul:
		return "Istanbul"
	case R09_Berlin:
		return "Berlin"
	case R10_London:
		return "London"
	case R11_Paris:
		return "Paris"
	case R12_Shanghai:
		return "Shanghai"
	case R13_Cancun:
		return "Cancun"
	default:
		return fmt.Sprintf("Revision(%d)", r)
	}
}

func (r Revision) MarshalJSON() ([]byte, error) {
	switch r {
	case R07_Istanbul, R09_Berlin, R10_London, R11_Paris, R12_Shanghai, R13_Cancun:
		return json.Marshal(r.String())
	default:
		return nil, fmt.Errorf("invalid revision: %d", int(r))
	}
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Istanbul":
		*r = R07_Istanbul
	case "Berlin":
		*r = R09_Berlin
	case "London":
		*r = R10_London
	case "Paris":
		*r = R11_Paris
	case "Shanghai":
		*r = R12_Shanghai
	case "Cancun":
		*r = R13_Cancun
	default:
		return fmt.Errorf("unknown revision: %s", s)
	}
	return nil
}
