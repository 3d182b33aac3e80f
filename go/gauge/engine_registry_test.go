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
	"testing"

	"go.uber.org/mock/gomock"
)

func TestEngineRegistry_RegisteredFactoryIsFoundCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockEngine(ctrl)

	err := RegisterEngineFactory("Registry-Test-Lookup", func(any) (Engine, error) {
		return engine, nil
	})
	if err != nil {
		t.Fatalf("failed to register factory: %v", err)
	}

	for _, name := range []string{"registry-test-lookup", "Registry-Test-Lookup", "REGISTRY-TEST-LOOKUP"} {
		if GetEngineFactory(name) == nil {
			t.Errorf("factory not found under name %s", name)
		}
		created, err := NewEngine(name)
		if err != nil {
			t.Errorf("failed to create engine under name %s: %v", name, err)
		}
		if created != engine {
			t.Errorf("unexpected engine instance for name %s", name)
		}
	}

	if _, found := GetAllRegisteredEngines()["registry-test-lookup"]; !found {
		t.Errorf("factory missing from the registry listing")
	}
}

func TestEngineRegistry_DuplicateAndNilRegistrationsFail(t *testing.T) {
	factory := func(any) (Engine, error) { return nil, nil }
	if err := RegisterEngineFactory("registry-test-duplicate", factory); err != nil {
		t.Fatalf("failed to register factory: %v", err)
	}
	if err := RegisterEngineFactory("Registry-Test-Duplicate", factory); err == nil {
		t.Errorf("expected duplicate registration to fail")
	}
	if err := RegisterEngineFactory("registry-test-nil", nil); err == nil {
		t.Errorf("expected nil-factory registration to fail")
	}
}

func TestEngineRegistry_CreationFailures(t *testing.T) {
	if _, err := NewEngine("registry-test-unknown"); err == nil {
		t.Errorf("expected creation of an unknown engine to fail")
	}
	if err := RegisterEngineFactory("registry-test-config", func(any) (Engine, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("failed to register factory: %v", err)
	}
	if _, err := NewEngine("registry-test-config", 1, 2); err == nil {
		t.Errorf("expected creation with multiple configurations to fail")
	}
}

func TestEngineRegistry_ConfigurationIsForwarded(t *testing.T) {
	type config struct{ depth int }
	var received any
	if err := RegisterEngineFactory("registry-test-forward", func(c any) (Engine, error) {
		received = c
		return nil, nil
	}); err != nil {
		t.Fatalf("failed to register factory: %v", err)
	}
	if _, err := NewEngine("registry-test-forward", config{depth: 7}); err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	if want, got := (config{depth: 7}), received; want != got {
		t.Errorf("unexpected configuration, wanted %v, got %v", want, got)
	}
}
