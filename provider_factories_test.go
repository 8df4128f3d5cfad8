package paylink

import (
	"testing"

	"github.com/paylinkhq/go-paylink/providers/flutterwave"
	"github.com/paylinkhq/go-paylink/providers/paystack"
	"github.com/paylinkhq/go-paylink/providers/seerbit"
)

func TestBuiltInTesterFactories(t *testing.T) {
	cases := []struct {
		name string
		fn   func() string
	}{
		{paystack.ProviderName, func() string { return PaystackTester(paystack.Config{}).Name() }},
		{flutterwave.ProviderName, func() string { return FlutterwaveTester(flutterwave.Config{}).Name() }},
		{seerbit.ProviderName, func() string { return SeerBitTester(seerbit.Config{}).Name() }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(); got != tc.name {
				t.Fatalf("expected tester name %q, got %q", tc.name, got)
			}
		})
	}
}

func TestNewBuiltinRegistry_RegistersEveryTester(t *testing.T) {
	registry, err := NewBuiltinRegistry()
	if err != nil {
		t.Fatalf("new builtin registry: %v", err)
	}

	for _, name := range []string{paystack.ProviderName, flutterwave.ProviderName, seerbit.ProviderName} {
		tester, err := registry.Tester(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		if tester.Name() != name {
			t.Fatalf("expected %q, got %q", name, tester.Name())
		}
	}
	if len(registry.Names()) != 3 {
		t.Fatalf("expected 3 registered testers, got %d", len(registry.Names()))
	}
}
