// Package core implements the provider-onboarding workflow: the
// connection-tester registry, the credential vault contract, and the
// orchestrator that validates, live-tests, and persists a merchant's
// payment-provider configuration.
//
// The package owns the domain model (Provider, ProviderConfig,
// CredentialBundle, ConnectionTestResult) and the contracts that
// provider testers, secret stores, and relational stores satisfy.
// Concrete implementations live in the providers, vault, and store/sql
// packages.
package core
