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
	"errors"
	"fmt"
	"testing"
)

func TestConstError_IsComparableWithErrorsIs(t *testing.T) {
	const err = ConstError("something failed")
	wrapped := fmt.Errorf("outer context: %w", err)
	if !errors.Is(wrapped, err) {
		t.Errorf("wrapped constant error not matched by errors.Is")
	}
	if errors.Is(wrapped, ConstError("something else failed")) {
		t.Errorf("distinct constant errors must not match")
	}
}

func TestConstError_ExhaustionErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrRefTimeExhausted, ErrProofSizeExhausted) {
		t.Errorf("the two exhaustion errors must be distinguishable")
	}
	if ErrRefTimeExhausted.Error() == ErrProofSizeExhausted.Error() {
		t.Errorf("the two exhaustion errors must render differently")
	}
}
