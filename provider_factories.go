package paylink

import (
	"github.com/paylinkhq/go-paylink/core"
	"github.com/paylinkhq/go-paylink/providers/flutterwave"
	"github.com/paylinkhq/go-paylink/providers/paystack"
	"github.com/paylinkhq/go-paylink/providers/seerbit"
)

func PaystackTester(cfg paystack.Config) core.ConnectionTester {
	return paystack.New(cfg)
}

func FlutterwaveTester(cfg flutterwave.Config) core.ConnectionTester {
	return flutterwave.New(cfg)
}

func SeerBitTester(cfg seerbit.Config) core.ConnectionTester {
	return seerbit.New(cfg)
}

// BuiltinTesters returns every bundled connection tester with default
// endpoints and timeouts.
func BuiltinTesters() []core.ConnectionTester {
	return []core.ConnectionTester{
		PaystackTester(paystack.Config{}),
		FlutterwaveTester(flutterwave.Config{}),
		SeerBitTester(seerbit.Config{}),
	}
}

// NewBuiltinRegistry wires every bundled connection tester into a
// registry.
func NewBuiltinRegistry() (*core.TesterRegistry, error) {
	return core.NewTesterRegistry(BuiltinTesters()...)
}
